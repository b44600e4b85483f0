package runtime

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trellisml/trellis/pkg/config"
	trellis_http "github.com/trellisml/trellis/pkg/http"
	"github.com/trellisml/trellis/pkg/loggers"
	"github.com/trellisml/trellis/pkg/pipeline"
	"github.com/trellisml/trellis/pkg/platform"
	"github.com/trellisml/trellis/pkg/tempdir"
	"github.com/trellisml/trellis/pkg/version"
	"go.uber.org/zap"
)

type TrellisRuntime struct {
	config   *config.TrellisConfiguration
	viper    *viper.Viper
	platform platform.Client
}

var (
	runtime *TrellisRuntime
	zaplog  *zap.Logger = loggers.ZapLogger()
	filelog *zap.Logger
)

// NewPlatformClient is swappable so tests can run the daemon against a mock.
var NewPlatformClient func(baseUrl string, token string) (platform.Client, error) = platform.NewPlatformClient

func GetTrellisRuntime() *TrellisRuntime {
	if runtime == nil {
		runtime = &TrellisRuntime{
			viper: viper.New(),
		}
	}
	return runtime
}

func (r *TrellisRuntime) LoadConfig() error {
	var err error
	if r.config == nil {
		r.config, err = config.LoadRuntimeConfiguration(r.viper, config.AppPath())
	}

	return err
}

func (r *TrellisRuntime) Run() error {
	err := r.startRuntime()
	if err != nil {
		return err
	}

	err = r.connectPlatform()
	if err != nil {
		return err
	}

	err = trellis_http.NewServer(r.config.HttpPort, r.platform, r.config.PlatformWorkspace()).Start()
	if err != nil {
		return err
	}

	r.printStartupBanner()

	err = r.scanForPipelines()
	if err != nil {
		log.Printf("error scanning for pipelines: %s", err.Error())
		return err
	}

	if r.config.DevelopmentMode {
		err = watchPipelines()
		if err != nil {
			zaplog.Sugar().Errorf("error watching for pipelines: %s", err.Error())
			return err
		}
	}

	return nil
}

func (r *TrellisRuntime) BindFlags(developmentFlag *pflag.Flag) error {
	err := r.viper.BindPFlag("development_mode", developmentFlag)
	if err != nil {
		return err
	}
	return nil
}

func (r *TrellisRuntime) PlatformClient() platform.Client {
	return r.platform
}

func (r *TrellisRuntime) Shutdown() {
	log.Println("Shutting down...")

	if r.platform != nil {
		err := r.platform.Close()
		if err != nil {
			zaplog.Sugar().Debug(err.Error())
		}
	}

	err := tempdir.RemoveAllCreatedTempDirectories()
	if err != nil {
		zaplog.Sugar().Debug(err.Error())
	}

	loggers.ZapLoggerSync()
}

func (r *TrellisRuntime) connectPlatform() error {
	if r.config.PlatformBaseUrl() == "" {
		return errors.New("no platform configured, set platform.url in .trellis/config.yaml")
	}

	client, err := NewPlatformClient(r.config.PlatformBaseUrl(), r.config.Platform.Token)
	if err != nil {
		return fmt.Errorf("error connecting to platform at %s: %w", r.config.PlatformBaseUrl(), err)
	}
	r.platform = client

	return nil
}

func (r *TrellisRuntime) printStartupBanner() {
	fmt.Printf("- Runtime version: %s\n", version.Version())
	if r.config.DevelopmentMode {
		fmt.Print("- ")
		fmt.Println(aurora.Yellow("Development mode"))
	}
	fmt.Print("- ")
	fmt.Println(aurora.BrightCyan(fmt.Sprintf("Platform: %s", r.config.PlatformBaseUrl())))
	fmt.Print("- ")
	fmt.Println(aurora.Green(fmt.Sprintf("Listening on http://localhost:%d", r.config.HttpPort)))
	fmt.Println()
	fmt.Println("Use Ctrl-C to stop")
}

func (r *TrellisRuntime) scanForPipelines() error {
	_, err := os.Stat(config.AppTrellisPath())
	if err != nil {
		// No app directory means no pipelines
		return nil
	}

	manifestsDir := config.PipelinesManifestsPath()
	_, err = os.Stat(manifestsDir)
	if err != nil {
		// No pipelines directory means no pipelines
		return nil
	}

	d, err := os.Open(manifestsDir)
	if err != nil {
		return err
	}

	files, err := d.Readdir(-1)
	d.Close()
	if err != nil {
		return err
	}

	for _, f := range files {
		if f.IsDir() {
			continue
		}

		manifestPath := filepath.Join(manifestsDir, f.Name())
		_, err = initializePipeline(manifestPath)
		if err != nil {
			log.Println(fmt.Errorf("error loading pipeline manifest %s: %w", manifestPath, err))
			continue
		}
	}

	return nil
}

func (r *TrellisRuntime) startRuntime() error {
	err := r.LoadConfig()
	if err != nil {
		return err
	}

	fileLogger, err := loggers.NewFileLogger("trellisd", config.AppTrellisPath())
	if err != nil {
		zaplog.Sugar().Debugf("failed to open daemon log file: %s", err.Error())
	} else {
		filelog = fileLogger
	}

	fmt.Println("Loading Trellis runtime ...")

	return nil
}

func initializePipeline(manifestPath string) (*pipeline.Pipeline, error) {
	newPipeline, err := pipeline.LoadPipelineFromManifest(manifestPath)
	if err != nil {
		log.Println(fmt.Errorf("error loading pipeline manifest %s: %w", manifestPath, err))
		return nil, err
	}

	pipeline.CreateOrUpdatePipeline(newPipeline)

	if filelog != nil {
		filelog.Sugar().Infow("pipeline loaded", "name", newPipeline.Name, "manifest", newPipeline.ManifestPath())
	}

	fmt.Printf("Loaded pipeline %s\n", aurora.BrightCyan(newPipeline.Name))

	return newPipeline, nil
}
