package api

import (
	"encoding/json"
	"errors"

	"github.com/keepmind9/botpipe/pkg/model"
)

// Response is the envelope every platform endpoint answers with.
type Response struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// Decode checks the envelope and unmarshals the result into v. An ok=false
// envelope becomes an *UpstreamError; a missing or malformed result becomes
// a *model.DecodeError. Pass a nil v to only check the envelope.
func (r *Response) Decode(v any) error {
	if !r.OK {
		desc := r.Description
		if desc == "" {
			desc = "no description provided"
		}
		return &UpstreamError{Description: desc, ErrorCode: r.ErrorCode}
	}
	if v == nil {
		return nil
	}
	if len(r.Result) == 0 {
		return &model.DecodeError{Err: errors.New("response has no result")}
	}
	if err := json.Unmarshal(r.Result, v); err != nil {
		return &model.DecodeError{Err: err}
	}
	return nil
}
