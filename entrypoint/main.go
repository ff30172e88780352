package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"text2phenotype.com/scribe/api"
	"text2phenotype.com/scribe/logger"
	"text2phenotype.com/scribe/models"
	"text2phenotype.com/scribe/pipeline"
	"text2phenotype.com/scribe/types"
	"text2phenotype.com/scribe/worker"
)

type Config struct {
	RulesPath     string `envconfig:"SCRIBE_RULES_PATH" default:""`
	KeyphraseTopN int    `envconfig:"SCRIBE_KEYPHRASE_TOP_N" default:"12"`
	RestAPIActive bool   `envconfig:"SCRIBE_REST_API_ACTIVE" default:"false"`
	RestAPIPort   string `envconfig:"SCRIBE_REST_API_PORT" default:"10000"`
}

const pipelineStartMaxRetries = 5

func main() {
	logger.SetupLogging()
	scribeLogger := logger.NewLogger("Main")
	fatalErrLogger := scribeLogger.Fatal().Caller()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}

	rules := types.DefaultRules()
	if config.RulesPath != "" {
		loaded, err := types.LoadRules(config.RulesPath)
		if err != nil {
			fatalErrLogger.Err(err).Msg("Failed to load rules file")
			os.Exit(1)
		}
		rules = loaded
		scribeLogger.Info().Str("path", config.RulesPath).Msg("Loaded rules overrides")
	}

	pipelineChannel := make(chan pipeline.Pipeline)
	go func() {
		for retry := 0; retry < pipelineStartMaxRetries; retry++ {
			modelsConfig, err := models.ReadConfig()
			if err != nil {
				scribeLogger.Err(err).Msg("Failed to read inference config. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			collaborators := models.NewCollaborators(modelsConfig)
			ppln := pipeline.New(pipeline.Params{
				Rules:         rules,
				KeyphraseTopN: config.KeyphraseTopN,
				Collaborators: collaborators,
			})
			scribeLogger.Info().Msg("Pipeline loaded")
			pipelineChannel <- ppln
			return
		}
		fatalErrLogger.Msg("Could not start pipeline after 5 retries, exiting")
		os.Exit(1)
	}()

	// block until pipeline loads
	ppln := <-pipelineChannel

	if config.RestAPIActive {
		go func() {
			scribeLogger.Info().Msg("Starting API service")
			apiRequest := &api.Request{
				Pipeline: ppln,
			}
			http.HandleFunc("/", apiRequest.ProcessData)
			http.Handle("/metrics", api.MetricsHandler())
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			scribeLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, nil)
			fatalErrLogger.Err(err).Msg("REST API stopped with error")
		}()
	}

	scribeLogger.Info().Msg("Start Scribe Worker")
	for {
		rmqWorker, err := worker.New(ppln)
		if err != nil {
			scribeLogger.Fatal().Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			scribeLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}
