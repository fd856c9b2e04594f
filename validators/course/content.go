package courseValidator

import (
	"edu/middleware"
	"edu/models/course"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ItemRequest creates an item and places it in a module. Which payload field
// is required depends on the kind: body for text, url for video, file for
// image and file. A nil Order appends the content after its siblings.
type ItemRequest struct {
	Title string `json:"title" validate:"required,max=250"`
	Body  string `json:"body"`
	URL   string `json:"url" validate:"omitempty,url,max=500"`
	File  string `json:"file" validate:"omitempty,max=500"`
	Order *int   `json:"order" validate:"omitempty,gte=0"`
}

// CreateContent validates content creation request
func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, msg := parseID(c, "module_id", "Module ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		kind, err := course.ParseKind(c.Params("kind"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content kind must be text, video, image, or file!", nil)
		}

		reqData := new(ItemRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.URL = strings.TrimSpace(reqData.URL)
		reqData.File = strings.TrimSpace(reqData.File)

		errors := validateStruct(reqData)
		switch kind {
		case course.KindText:
			if strings.TrimSpace(reqData.Body) == "" {
				errors["body"] = "Body is required for text content!"
			}
		case course.KindVideo:
			if reqData.URL == "" {
				errors["url"] = "Url is required for video content!"
			}
		case course.KindImage, course.KindFile:
			if reqData.File == "" {
				errors["file"] = "File is required for " + string(kind) + " content!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("moduleID", moduleID)
		c.Locals("contentKind", kind)
		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

// ModuleContentIDs validates the :module_id and :content_id route parameters
func ModuleContentIDs() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, msg := parseID(c, "module_id", "Module ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		contentID, msg := parseID(c, "content_id", "Content ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}

		c.Locals("moduleID", moduleID)
		c.Locals("contentID", contentID)
		return c.Next()
	}
}
