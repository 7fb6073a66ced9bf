package checkout

import "fmt"

// Rejection is a submission failure the customer can act on (stock, coupon,
// empty cart). Its message is shown verbatim; anything else surfaces as a
// generic retryable error.
type Rejection struct {
	Reason string
}

func (r Rejection) Error() string { return r.Reason }

func reject(format string, args ...interface{}) error {
	return Rejection{Reason: fmt.Sprintf(format, args...)}
}
