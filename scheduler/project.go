package scheduler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/naming"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
	"github.com/rs/zerolog/log"
)

const (
	ECode040301 = e.Code0403 + "01"
	ECode040302 = e.Code0403 + "02"
	ECode040303 = e.Code0403 + "03"
)

// ProjectClient project calls
type ProjectClient struct {
	c *Client
}

// GetByName returns the project with the name (case-insensitive), nil if it
// does not exist
func (pc *ProjectClient) GetByName(ctx context.Context, name string) (p *model.Project, err error) {
	list, err := callPage[*model.Project](ctx, pc.c, "/projects", url.Values{
		"searchVal": {name},
	})
	if err != nil {
		return nil, e.W(err, ECode040301)
	}

	for _, item := range list {
		if item != nil && naming.Match(item.Name, name) {
			return item, nil
		}
	}

	return nil, nil
}

// Create creates a project
func (pc *ProjectClient) Create(ctx context.Context, name, description string) (p *model.Project, err error) {
	p, err = call[*model.Project](ctx, pc.c, http.MethodPost, "/projects", url.Values{
		"projectName": {name},
		"description": {description},
	})
	if err != nil {
		return nil, e.W(err, ECode040302)
	}

	return p, nil
}

// Resolve returns the project with the name, creating it if it does not exist
func (pc *ProjectClient) Resolve(ctx context.Context, name string) (p *model.Project, err error) {
	p, err = pc.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	log.Info().Msgf("scheduler project %s does not exist, creating it", name)
	p, err = pc.Create(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, e.NK(e.ErrNotFound, ECode040303, e.MsgProjectNotExists)
	}

	return p, nil
}
