package content

import (
	"fmt"
	"html"
	"strings"

	"coursehub/internal/config"
	"coursehub/internal/domain"
	models "coursehub/internal/domain/models/content"
	contentSvc "coursehub/internal/domain/services/content"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

var nameRules = []validation.Rule{
	validation.Required.Error("name is required"),
	validation.Length(1, config.MaxNameLength),
}

// parentFromSelector turns the legacy (parent_folder_id, course_id) pair
// into a single parent reference. Exactly one side must be set.
func parentFromSelector(sel contentSvc.ParentSelector) (models.NodeRef, error) {
	folderID := trimmed(sel.ParentFolderID)
	courseID := trimmed(sel.CourseID)

	switch {
	case folderID != "" && courseID != "":
		return models.NodeRef{}, fmt.Errorf("%w: provide either parent_folder_id or course_id, not both", domain.ErrValidation)
	case folderID != "":
		return models.FolderRef(folderID), nil
	case courseID != "":
		return models.CourseRef(courseID), nil
	}
	return models.NodeRef{}, fmt.Errorf("%w: parent_folder_id or course_id is required", domain.ErrValidation)
}

// parseReviewTarget validates a course or file reference from request fields
func parseReviewTarget(resourceType, resourceID string) (models.NodeRef, error) {
	kind := models.NodeKind(strings.TrimSpace(resourceType))
	if !kind.Reviewable() {
		return models.NodeRef{}, fmt.Errorf("%w: resource_type must be course or file", domain.ErrValidation)
	}
	id := strings.TrimSpace(resourceID)
	if id == "" {
		return models.NodeRef{}, fmt.Errorf("%w: resource_id is required", domain.ErrValidation)
	}
	return models.NodeRef{Kind: kind, ID: id}, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// plainText strips markup from user-supplied text and trims it.
// Entities are decoded again so the stored value is text, not HTML;
// responses are JSON and escaping is the renderer's job.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func plainTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := plainText(*s)
	return &v
}
