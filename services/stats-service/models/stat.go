package models

import "time"

// ApiCallStat tracks how often an endpoint has been hit and when it
// was last called. The endpoint path is the document id.
type ApiCallStat struct {
	Endpoint   string    `bson:"_id" json:"endpoint"`
	Count      int64     `bson:"count" json:"count"`
	LastCalled time.Time `bson:"last_called" json:"last_called"`
}
