package fhir_spark

import (
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/exceptions"
	"chart-service/internal/pkg/fhir_dto"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// Requester sends requests to the FHIR server through a shared token bucket so a burst
// of chart loads cannot flood it.
type Requester struct {
	BaseUrl    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

// NewRequester builds a Requester. A non-positive maxRequestsPerSecond disables throttling.
func NewRequester(baseUrl string, timeout time.Duration, maxRequestsPerSecond int) *Requester {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if maxRequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), maxRequestsPerSecond)
	}

	return &Requester{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Limiter:    limiter,
	}
}

// ResourceUrl returns the collection endpoint of resource, e.g. <base>/Observation.
func (r *Requester) ResourceUrl(resource string) string {
	return fmt.Sprintf("%s/%s", r.BaseUrl, resource)
}

func (r *Requester) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	err := r.Limiter.Wait(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, exceptions.ErrFHIRRateLimiterWait(err)
	}

	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set("Accept", constvars.MIMEApplicationFHIRJSON)
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok && requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	return resp, nil
}

// OutcomeError turns a failed FHIR response into an error, preferring the diagnostics
// of the first OperationOutcome issue over the bare status line.
func OutcomeError(resp *http.Response) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var outcome fhir_dto.OperationOutcome
	if json.Unmarshal(bodyBytes, &outcome) == nil && len(outcome.Issue) > 0 {
		issue := outcome.Issue[0]
		if issue.Diagnostics != "" {
			return errors.New(issue.Diagnostics)
		}
		if issue.Details != nil && issue.Details.Text != "" {
			return errors.New(issue.Details.Text)
		}
		return fmt.Errorf("%s: %s", issue.Severity, issue.Code)
	}

	return fmt.Errorf("unexpected status %d from FHIR server", resp.StatusCode)
}
