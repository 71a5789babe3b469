package api

import (
	"encoding/json"

	"github.com/teranos/zappy/errors"
)

// AliasCreationRequest is the body of POST /alias/create
type AliasCreationRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AliasCreationResult is either AliasCreated or AliasRejected
type AliasCreationResult interface {
	isAliasCreationResult()
}

// AliasCreated reports that the service stored the alias
type AliasCreated struct{}

// AliasRejected reports that the service refused the alias
type AliasRejected struct {
	Reason string
}

func (AliasCreated) isAliasCreationResult()  {}
func (AliasRejected) isAliasCreationResult() {}

// createResponse decodes {created, error?} into an AliasCreationResult
type createResponse struct {
	Result AliasCreationResult
}

func (r *createResponse) UnmarshalJSON(data []byte) error {
	var wire struct {
		Created *bool   `json:"created"`
		Error   *string `json:"error"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	switch {
	case wire.Created == nil:
		return errors.NewMalformedResponseError("create response has no created flag")
	case *wire.Created:
		r.Result = AliasCreated{}
	case wire.Error == nil || *wire.Error == "":
		return errors.NewMalformedResponseError("create response has created=false but no error")
	default:
		r.Result = AliasRejected{Reason: *wire.Error}
	}
	return nil
}

// RequestLogEntry is one recorded hit against an alias
type RequestLogEntry struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	UserID    string `json:"user_id"`
	Referer   string `json:"referer"`
	CreatedAt string `json:"CreatedAt"`
}

// RequestLogQueryResult is either RequestLog or RequestLogRejected
type RequestLogQueryResult interface {
	isRequestLogQueryResult()
}

// RequestLog is the request history of an alias, in the order the service returned it
type RequestLog struct {
	Count   int
	Entries []RequestLogEntry
}

// RequestLogRejected reports that the service refused to return the log
type RequestLogRejected struct {
	Reason string
}

func (RequestLog) isRequestLogQueryResult()         {}
func (RequestLogRejected) isRequestLogQueryResult() {}

// requestsResponse decodes {success, error?, data?} into a RequestLogQueryResult
type requestsResponse struct {
	Result RequestLogQueryResult
}

func (r *requestsResponse) UnmarshalJSON(data []byte) error {
	var wire struct {
		Success *bool   `json:"success"`
		Error   *string `json:"error"`
		Data    *struct {
			Count    int               `json:"count"`
			Requests []RequestLogEntry `json:"requests"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	switch {
	case wire.Success == nil:
		return errors.NewMalformedResponseError("requests response has no success flag")
	case *wire.Success && wire.Data == nil:
		return errors.NewMalformedResponseError("requests response has success=true but no data")
	case *wire.Success:
		r.Result = RequestLog{Count: wire.Data.Count, Entries: wire.Data.Requests}
	case wire.Error == nil || *wire.Error == "":
		return errors.NewMalformedResponseError("requests response has success=false but no error")
	default:
		r.Result = RequestLogRejected{Reason: *wire.Error}
	}
	return nil
}
