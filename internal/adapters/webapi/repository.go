package webapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/kiryu-dev/chess-client/internal/domain"
	"github.com/kiryu-dev/chess-client/pkg/utils"
	"github.com/pkg/errors"
)

const (
	clientTimeout  = 5 * time.Second
	statusEndpoint = "/status"
)

type repository struct {
	cli *http.Client
}

func New() repository {
	return repository{
		cli: &http.Client{Timeout: clientTimeout},
	}
}

// Any 2xx status means up; the body is optional.
func (r repository) Status(ctx context.Context, addr string) (*domain.StatusResponse, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+statusEndpoint, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "new get request")
	}
	resp, err := r.cli.Do(request)
	if err != nil {
		return nil, errors.WithMessagef(err, "call http endpoint '%s'", statusEndpoint)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("unexpected response status '%s'", resp.Status)
	}
	result := &domain.StatusResponse{IsUp: true}
	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return result, nil
	}
	if details, err := utils.UnmarshalJson[domain.StatusResponse](body); err == nil {
		result.ClientsCount = details.ClientsCount
		result.DateTime = details.DateTime
	}
	return result, nil
}
