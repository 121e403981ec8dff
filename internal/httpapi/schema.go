package httpapi

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const schemaVerifyPayment = `{
  "type": "object",
  "required": ["razorpay_order_id", "razorpay_payment_id", "razorpay_signature", "order_id"],
  "properties": {
    "razorpay_order_id":   {"type": "string", "minLength": 1},
    "razorpay_payment_id": {"type": "string", "minLength": 1},
    "razorpay_signature":  {"type": "string", "minLength": 1},
    "order_id":            {"type": "string", "minLength": 1}
  }
}`

const schemaUpdateStatus = `{
  "type": "object",
  "required": ["status"],
  "properties": {
    "status": {"type": "string", "minLength": 1}
  }
}`

var (
	verifyPaymentLoader = gojsonschema.NewStringLoader(schemaVerifyPayment)
	updateStatusLoader  = gojsonschema.NewStringLoader(schemaUpdateStatus)
)

func validateJSONSchema(schemaLoader gojsonschema.JSONLoader, body []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("gojsonschema.Validate: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("request does not conform to schema: %s", strings.Join(msgs, "; "))
	}

	return nil
}
