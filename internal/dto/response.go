package dto

// ResponseWrapper is the success envelope convention: every successful
// response carries its status code and the payload under "values".
type ResponseWrapper struct {
	StatusCode int         `json:"status_code"`
	Values     interface{} `json:"values"`
}

// Wrap builds a ResponseWrapper.
func Wrap(statusCode int, values interface{}) ResponseWrapper {
	return ResponseWrapper{
		StatusCode: statusCode,
		Values:     values,
	}
}
