package api

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"text2phenotype.com/scribe/pipeline"
)

type Request struct {
	Pipeline pipeline.Pipeline
}

// ProcessData runs the dialogue pipeline on the raw transcript in the
// request body and responds with the combined artifact document.
func (req *Request) ProcessData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := makeRequestLogger(r)

	if r.Method != http.MethodPost {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	msg, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	request := pipeline.Request{
		Tid:  uuid.New().String(),
		Text: string(msg),
	}
	logger.Info().Str("tid", request.Tid).Msg("Starting pipeline for request from API")
	requestsTotal.Inc()
	started := time.Now()

	outcome := <-req.Pipeline(request)
	requestDuration.Observe(time.Since(started).Seconds())
	if outcome.Err != nil {
		requestsFailed.Inc()
		logger.Err(outcome.Err).Int("status", http.StatusInternalServerError).Msg("Pipeline run failed")
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	combined, err := pipeline.CombinedJSON(outcome.Artifacts)
	if err != nil {
		requestsFailed.Inc()
		logger.Err(err).Int("status", http.StatusInternalServerError).Msg("Could not assemble response document")
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	_, _ = w.Write([]byte(combined))
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}
