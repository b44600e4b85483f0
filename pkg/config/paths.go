package config

import (
	"os"
	"path"
	"strings"

	"github.com/trellisml/trellis/pkg/constants"
)

var (
	appPath           string
	appTrellisPath    string
	pipelinesManifest string
)

func AppPath() string {
	if appPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			panic(err)
		}
		appPath = cwd
	}

	return appPath
}

func AppTrellisPath() string {
	if appTrellisPath == "" {
		appTrellisPath = path.Join(AppPath(), constants.DotTrellis)
	}
	return appTrellisPath
}

func PipelinesManifestsPath() string {
	if pipelinesManifest == "" {
		pipelinesManifest = path.Join(AppTrellisPath(), "pipelines")
	}
	return pipelinesManifest
}

func ScriptsPath() string {
	return path.Join(AppPath(), "scripts")
}

func GetTrellisAppRelativePath(absolutePath string) string {
	if strings.HasPrefix(absolutePath, AppPath()) {
		return absolutePath[len(AppPath())+1:]
	}
	return absolutePath
}
