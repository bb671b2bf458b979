package proof

import (
	"context"
	"net/url"
	"strings"

	"github.com/fatih/structs"
	"github.com/habitquest/backend/internal/entity"
	"github.com/habitquest/backend/pkg/errorx"
	"github.com/habitquest/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

// A payload validates the evidence submitted with a completion and
// canonicalizes it back into the stored map shape.
type payload interface {
	validate(ctx context.Context) error
	encode() entity.Map
}

// Canonicalize decodes the submitted proof for the quest's proof type,
// validates it, and returns the canonical map persisted on the completion.
func Canonicalize(ctx context.Context, proofType entity.ProofType, data entity.Map) (entity.Map, error) {
	p, err := newPayload(ctx, proofType, data)
	if err != nil {
		return nil, err
	}

	if err := p.validate(ctx); err != nil {
		return nil, err
	}

	return p.encode(), nil
}

func newPayload(ctx context.Context, proofType entity.ProofType, data entity.Map) (payload, error) {
	var p payload
	switch proofType {
	case entity.ProofCheck:
		p = &checkPayload{}
	case entity.ProofText:
		p = &textPayload{}
	case entity.ProofTimer:
		p = &timerPayload{}
	case entity.ProofCounter:
		p = &counterPayload{}
	case entity.ProofPhoto:
		p = &photoPayload{}
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid proof type %s", proofType)
	}

	if err := mapstructure.Decode(map[string]any(data), p); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot decode proof payload: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Malformed proof payload")
	}

	return p, nil
}

type checkPayload struct {
	Checked bool `mapstructure:"checked" structs:"checked"`
}

func (p *checkPayload) validate(ctx context.Context) error {
	if !p.Checked {
		return errorx.New(errorx.BadRequest, "Quest was not checked off")
	}

	return nil
}

func (p *checkPayload) encode() entity.Map { return structs.Map(p) }

type textPayload struct {
	Text string `mapstructure:"text" structs:"text"`
}

func (p *textPayload) validate(ctx context.Context) error {
	if strings.TrimSpace(p.Text) == "" {
		return errorx.New(errorx.BadRequest, "Text proof must not be empty")
	}

	return nil
}

func (p *textPayload) encode() entity.Map { return structs.Map(p) }

type timerPayload struct {
	Seconds int `mapstructure:"seconds" structs:"seconds"`
}

func (p *timerPayload) validate(ctx context.Context) error {
	if p.Seconds <= 0 {
		return errorx.New(errorx.BadRequest, "Timer proof needs a positive duration")
	}

	return nil
}

func (p *timerPayload) encode() entity.Map { return structs.Map(p) }

type counterPayload struct {
	Count int `mapstructure:"count" structs:"count"`
}

func (p *counterPayload) validate(ctx context.Context) error {
	if p.Count <= 0 {
		return errorx.New(errorx.BadRequest, "Counter proof needs a positive count")
	}

	return nil
}

func (p *counterPayload) encode() entity.Map { return structs.Map(p) }

type photoPayload struct {
	URL string `mapstructure:"url" structs:"url"`
}

func (p *photoPayload) validate(ctx context.Context) error {
	if _, err := url.ParseRequestURI(p.URL); err != nil {
		xcontext.Logger(ctx).Debugf("Invalid photo url: %v", err)
		return errorx.New(errorx.BadRequest, "Photo proof needs a valid url")
	}

	return nil
}

func (p *photoPayload) encode() entity.Map { return structs.Map(p) }
