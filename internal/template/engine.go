package template

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed data/*.tmpl
var files embed.FS

const (
	deliverySubjectFile = "data/delivery_confirmation.subject.tmpl"
	deliveryBodyFile    = "data/delivery_confirmation.html.tmpl"
)

type Email struct {
	Subject string
	HTML    string
}

// Engine holds the parsed email templates. It is safe for concurrent use.
type Engine struct {
	deliverySubject *texttemplate.Template
	deliveryBody    *htmltemplate.Template
}

func NewEngine() (*Engine, error) {
	subject, err := texttemplate.ParseFS(files, deliverySubjectFile)
	if err != nil {
		return nil, fmt.Errorf("texttemplate.ParseFS[%s]: %w", deliverySubjectFile, err)
	}

	body, err := htmltemplate.ParseFS(files, deliveryBodyFile)
	if err != nil {
		return nil, fmt.Errorf("htmltemplate.ParseFS[%s]: %w", deliveryBodyFile, err)
	}

	return &Engine{
		deliverySubject: subject,
		deliveryBody:    body,
	}, nil
}

func (e *Engine) RenderDelivery(data DeliveryData) (Email, error) {
	var email Email

	if data.OrderNumber == "" {
		return email, fmt.Errorf("order number is empty")
	}

	var subject bytes.Buffer
	if err := e.deliverySubject.Execute(&subject, data); err != nil {
		return email, fmt.Errorf("deliverySubject.Execute: %w", err)
	}

	var body bytes.Buffer
	if err := e.deliveryBody.Execute(&body, data); err != nil {
		return email, fmt.Errorf("deliveryBody.Execute: %w", err)
	}

	email.Subject = strings.TrimSpace(subject.String())
	email.HTML = body.String()

	return email, nil
}
