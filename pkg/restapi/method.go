package restapi

import "net/http"

// Method is the HTTP verb of a request. Only the four constants below are
// dispatched; anything else fails with *UnsupportedMethodError.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPut    Method = http.MethodPut
	MethodPost   Method = http.MethodPost
	MethodDelete Method = http.MethodDelete
)

// placement is where a method carries its parameters.
type placement int

const (
	inQuery placement = iota + 1
	inBody
)

func (m Method) placement() (placement, error) {
	switch m {
	case MethodGet, MethodDelete:
		return inQuery, nil
	case MethodPut, MethodPost:
		return inBody, nil
	default:
		return 0, &UnsupportedMethodError{Method: string(m)}
	}
}

// Supported reports whether m is one of GET, PUT, POST or DELETE.
func (m Method) Supported() bool {
	_, err := m.placement()
	return err == nil
}

// Visibility marks a request as public or as requiring signed headers.
type Visibility int

const (
	Public Visibility = iota
	Private
)

func (v Visibility) String() string {
	if v == Private {
		return "private"
	}
	return "public"
}
