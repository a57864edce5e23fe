package email

import (
	"context"
	"fmt"
)

// HeroCreatedData is the template data of a roster notification.
type HeroCreatedData struct {
	ID         int64
	Name       string
	SecretName string
}

// SendHeroCreatedEmail tells the roster address about a newly created hero.
func (c *Client) SendHeroCreatedEmail(ctx context.Context, to string, data HeroCreatedData) error {
	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("New hero: %s", data.Name),
		TemplateHeroCreated,
		data,
	)
}
