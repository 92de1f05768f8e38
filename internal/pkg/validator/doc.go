// Package validator provides a small validation abstraction for request and
// domain structs.
//
// Business code depends on the Validator interface; the go-playground v10
// implementation lives here and reports failures as a field-to-message map.
package validator
