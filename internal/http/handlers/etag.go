package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/gofiber/fiber/v2"
)

// weakETag hashes the JSON form of v.
func weakETag(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(body)), body, nil
}

// sendWithETag answers 304 when the client already holds this representation.
func sendWithETag(c *fiber.Ctx, v any) error {
	tag, body, err := weakETag(v)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderETag, tag)
	if match := c.Get(fiber.HeaderIfNoneMatch); match != "" && match == tag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
