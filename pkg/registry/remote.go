package registry

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/trellisml/trellis/pkg/config"
	trellis_http "github.com/trellisml/trellis/pkg/http"
	"github.com/trellisml/trellis/pkg/loggers"
	"github.com/trellisml/trellis/pkg/tempdir"
	"github.com/trellisml/trellis/pkg/util"
	"go.uber.org/zap"
)

var (
	zaplog *zap.Logger = loggers.ZapLogger()
)

// RemoteRegistry fetches a pipeline bundle over HTTPS. A bundle is a zip
// archive carrying the manifest and its step scripts.
type RemoteRegistry struct{}

func (r *RemoteRegistry) GetPipeline(pipelineUrl string) (string, error) {
	pipelineName := strings.TrimSuffix(filepath.Base(pipelineUrl), ".zip")
	failureMessage := fmt.Sprintf("An error occurred while fetching pipeline '%s'", pipelineName)

	response, err := trellis_http.Get(pipelineUrl, "application/zip")
	if err != nil {
		zaplog.Sugar().Debugf("%s: %s", failureMessage, err.Error())
		return "", errors.New(failureMessage)
	}
	defer response.Body.Close()

	if response.StatusCode == 404 {
		return "", NewRegistryItemNotFound(fmt.Errorf("pipeline %s not found", pipelineName))
	}

	if response.StatusCode != 200 {
		return "", fmt.Errorf("an error occurred fetching pipeline '%s'", pipelineName)
	}

	downloadDir, err := tempdir.CreateTempDir("registry")
	if err != nil {
		return "", err
	}

	bundlePath := filepath.Join(downloadDir, fmt.Sprintf("%s.zip", pipelineName))
	err = util.SaveReaderToFile(response.Body, bundlePath)
	if err != nil {
		return "", err
	}

	manifestsPath := config.PipelinesManifestsPath()

	manifestsPerm, err := util.MkDirAllInheritPerm(manifestsPath)
	if err != nil {
		return "", err
	}

	zipReader, err := zip.OpenReader(bundlePath)
	if err != nil {
		return "", err
	}

	var manifestPath string

	for _, f := range zipReader.File {
		fpath := filepath.Join(manifestsPath, f.Name)
		if f.FileInfo().IsDir() {
			err := os.MkdirAll(fpath, manifestsPerm)
			if err != nil {
				return "", err
			}
			continue
		}

		err = os.MkdirAll(filepath.Dir(fpath), manifestsPerm)
		if err != nil {
			return "", err
		}

		outFile, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			return "", err
		}
		defer outFile.Close()

		zipFile, err := f.Open()
		if err != nil {
			return "", err
		}
		defer zipFile.Close()

		_, err = io.Copy(outFile, zipFile)
		if err != nil {
			return "", err
		}

		if strings.EqualFold(filepath.Base(outFile.Name()), fmt.Sprintf("%s.yaml", pipelineName)) {
			manifestPath = outFile.Name()
		}
	}

	return manifestPath, nil
}
