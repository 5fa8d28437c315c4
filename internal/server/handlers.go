package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jmorneau/fizzlab/internal/config"
	apperrors "github.com/jmorneau/fizzlab/internal/errors"
	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/logging"
	"github.com/jmorneau/fizzlab/internal/orchestration"
)

// tracerName identifies this package's spans.
const tracerName = "fizzlab/server"

// classicBlocks returns the Fizz/Buzz preset used when a request names no
// rules.
func classicBlocks() []fizzbuzz.Block {
	return []fizzbuzz.Block{
		fizzbuzz.NewDivisorBlock("Fizz", "Fizz", 3, 0),
		fizzbuzz.NewDivisorBlock("Buzz", "Buzz", 5, 1),
	}
}

// handleSequence serves POST /api/v1/sequence: decode the rules, validate
// the interval, run one batch under the request context and return the
// classified numbers with a summary.
func (s *Server) handleSequence(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req sequenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	blocks, err := decodeBlocks(req.Blocks)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(blocks) == 0 {
		blocks = classicBlocks()
	}

	if req.Start < 1 {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("start must be at least 1, got %d", req.Start))
		return
	}
	if req.Start >= req.End {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("start (%d) must be less than end (%d)", req.Start, req.End))
		return
	}
	if span := req.End - req.Start + 1; span > s.security.MaxSpan {
		s.writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("interval span %d exceeds the limit of %d", span, s.security.MaxSpan))
		return
	}

	ctx, span := otel.Tracer(tracerName).Start(r.Context(), "sequence.generate")
	defer span.End()
	span.SetAttributes(
		attribute.Int("sequence.start", req.Start),
		attribute.Int("sequence.end", req.End),
		attribute.Int("sequence.rules", len(blocks)),
	)

	res := orchestration.ExecuteBatch(ctx, req.Start, req.End, blocks, orchestration.NullProgressReporter{}, io.Discard)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, "generation failed")
		s.logger.Error("sequence generation failed", res.Err,
			logging.Int("start", req.Start), logging.Int("end", req.End))
		s.writeError(w, statusForBatchError(res.Err), "generation failed: "+res.Err.Error())
		return
	}
	span.SetAttributes(attribute.Int("sequence.results", len(res.Results)))

	s.metrics.AddNumbersEvaluated(len(res.Results))
	s.metrics.ObserveBatchDuration(res.Duration.Seconds())

	s.writeJSON(w, http.StatusOK, sequenceResponse{
		Results: encodeResults(res.Results),
		Summary: encodeSummary(orchestration.Summarize(res.Results, res.Duration)),
	})
}

// statusForBatchError maps a failed batch to its HTTP status. Validation
// problems that slipped past the handler checks are still client errors.
func statusForBatchError(err error) int {
	var ve apperrors.ValidationError
	var ce apperrors.ConfigError
	if errors.As(err, &ve) || errors.As(err, &ce) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// handleDefaults serves GET /api/v1/defaults with the classic preset in
// wire form.
func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	blocks := classicBlocks()
	wire := make([]blockWire, 0, len(blocks))
	for _, b := range blocks {
		wire = append(wire, encodeBlock(b))
	}
	s.writeJSON(w, http.StatusOK, defaultsResponse{
		Start:  config.DefaultStart,
		End:    config.DefaultEnd,
		Blocks: wire,
	})
}

// handleHealth serves GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes v as the JSON response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", err)
	}
}

// writeError writes a JSON error body with the given status.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.logger.Debug("request rejected",
		logging.Int("status", status), logging.String("reason", msg))
	s.writeJSON(w, status, errorResponse{Error: msg})
}
