package customheaders

import (
	"bufio"
	"errors"
	"net/http"
	"net/textproto"
	"strings"
)

var errInvalidHeaderParameter = errors.New("invalid syntax specified as header parameter")

// CORS returns the cross-origin headers attached to every response so that
// extension pages loaded from other origins can fetch the served files.
func CORS() http.Header {
	return http.Header{
		"Access-Control-Allow-Origin":  {"*"},
		"Access-Control-Allow-Methods": {"GET, POST, OPTIONS"},
		"Access-Control-Allow-Headers": {"Content-Type"},
	}
}

// Merge returns a new header set holding the values of every given set. A key
// present in a later set replaces the values of earlier sets.
func Merge(sets ...http.Header) http.Header {
	merged := http.Header{}
	for _, set := range sets {
		for k, v := range set {
			merged[k] = append([]string(nil), v...)
		}
	}

	return merged
}

// AddCustomHeaders sets a map of Headers on a Response, replacing any value
// already set for the same key
func AddCustomHeaders(w http.ResponseWriter, headers http.Header) {
	for k, v := range headers {
		w.Header()[k] = append([]string(nil), v...)
	}
}

// ParseHeaderString parses a string of key values into a map
func ParseHeaderString(customHeaders []string) (http.Header, error) {
	headers := http.Header{}
	for _, keyValueString := range customHeaders {
		keyValueString = strings.TrimSpace(keyValueString) + "\n\n"
		tp := textproto.NewReader(bufio.NewReader(strings.NewReader(keyValueString)))
		keyValue, err := tp.ReadMIMEHeader()
		if err != nil {
			return nil, errInvalidHeaderParameter
		}

		for k, v := range keyValue {
			k = textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(k))
			headers[k] = append(headers[k], v...)
		}
	}
	return headers, nil
}
