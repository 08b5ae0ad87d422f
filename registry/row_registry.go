/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SchwabischesBauernbrot/firefish/storagemodels"
)

// UnmarshalFunc converts a raw scanned item into the FeedRow variant for one
// row origin.
type UnmarshalFunc func(item map[string]types.AttributeValue) (storagemodels.FeedRow, error)

// rowRegistry maps a row origin tag to its unmarshal function.
var rowRegistry = make(map[storagemodels.RowOrigin]UnmarshalFunc)

// RegisterRowVariant registers an unmarshal function for a row origin.
// It panics when a variant is registered twice to prevent accidental overrides.
func RegisterRowVariant(origin storagemodels.RowOrigin, fn UnmarshalFunc) {
	if _, exists := rowRegistry[origin]; exists {
		panic(fmt.Sprintf("row registry: variant %q already registered", origin))
	}
	rowRegistry[origin] = fn
}

// GetUnmarshalFunc returns the registered unmarshal function for the given
// row origin. If no function is registered, it returns an error.
func GetUnmarshalFunc(origin storagemodels.RowOrigin) (UnmarshalFunc, error) {
	fn, ok := rowRegistry[origin]
	if !ok {
		return nil, fmt.Errorf("row registry: no variant registered for origin %q", origin)
	}
	return fn, nil
}
