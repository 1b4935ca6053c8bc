package views

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"astrobrasil/internal/contact"
	"astrobrasil/internal/core"
	"astrobrasil/internal/i18n"
)

// ContactView is the contact page model.
type ContactView struct {
	Notice *Notice `json:"notice,omitempty"`
}

// ContactController handles the contact form.
type ContactController struct {
	svc       *core.Service
	inquiries *contact.Service
	board     *NoticeBoard
}

// Render returns the page with any notice still on display.
func (c *ContactController) Render(context.Context) ContactView {
	if c.board == nil {
		return ContactView{}
	}
	if n, ok := c.board.Current(); ok {
		return ContactView{Notice: &n}
	}
	return ContactView{}
}

// Submit archives the inquiry and posts a localized notice describing the outcome.
func (c *ContactController) Submit(ctx context.Context, locale language.Tag, in contact.Inquiry) (contact.Receipt, error) {
	if locale == language.Und {
		locale = i18n.Default
	}
	p := i18n.Printer(locale)
	receipt, err := c.inquiries.Submit(ctx, in)
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr) && verr.Code == contact.CodeInvalidEmail:
		c.post(p.Sprintf(i18n.KeyEmailTitle), p.Sprintf(i18n.KeyEmailBody), true)
	case errors.As(err, &verr):
		c.post(p.Sprintf(i18n.KeyValidationTitle), p.Sprintf(i18n.KeyValidationBody), true)
	case err != nil:
		c.svc.Logger().Error("inquiry archive failed", zap.Error(err))
		c.post(p.Sprintf(i18n.KeyFailureTitle), p.Sprintf(i18n.KeyFailureBody), true)
	default:
		c.post(p.Sprintf(i18n.KeySuccessTitle), p.Sprintf(i18n.KeySuccessBody, receipt.Name, receipt.Category), false)
	}
	return receipt, err
}

func (c *ContactController) post(title, message string, isError bool) {
	if c.board != nil {
		c.board.Post(title, message, isError)
	}
}
