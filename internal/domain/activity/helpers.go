package activity

import (
	"context"
	"fmt"
)

// Convenience wrappers for common activities.

// LogLogin records a user login.
func (s *Service) LogLogin(ctx context.Context, user, source string, details map[string]any) (Record, error) {
	return s.Log(ctx, user, string(TypeLogin), details, source)
}

// LogLogout records a user logout.
func (s *Service) LogLogout(ctx context.Context, user, source string) (Record, error) {
	return s.Log(ctx, user, string(TypeLogout), map[string]any{}, source)
}

// LogConfigChange records a set of configuration changes.
func (s *Service) LogConfigChange(ctx context.Context, user string, changes map[string]any, source string) (Record, error) {
	return s.Log(ctx, user, string(TypeConfigChange), map[string]any{"changes": changes}, source)
}

// LogInputChange records a single input field change.
func (s *Service) LogInputChange(ctx context.Context, user, field string, oldValue, newValue any, source string) (Record, error) {
	return s.Log(ctx, user, string(TypeInputChange), map[string]any{
		"field":     field,
		"old_value": fmt.Sprint(oldValue),
		"new_value": fmt.Sprint(newValue),
	}, source)
}

// LogSave records a save operation.
func (s *Service) LogSave(ctx context.Context, user, item, source string) (Record, error) {
	return s.Log(ctx, user, string(TypeSave), map[string]any{"item": item}, source)
}

// LogLoad records a load operation.
func (s *Service) LogLoad(ctx context.Context, user, item, source string) (Record, error) {
	return s.Log(ctx, user, string(TypeLoad), map[string]any{"item": item}, source)
}

// LogError records an error event.
func (s *Service) LogError(ctx context.Context, user, errMsg string, details map[string]any) (Record, error) {
	return s.Log(ctx, user, string(TypeError), withMessage("error", errMsg, details), SourceSystem)
}

// LogWarning records a warning event.
func (s *Service) LogWarning(ctx context.Context, user, warning string, details map[string]any) (Record, error) {
	return s.Log(ctx, user, string(TypeWarning), withMessage("warning", warning, details), SourceSystem)
}

// LogInfo records an informational event.
func (s *Service) LogInfo(ctx context.Context, user, message string, details map[string]any) (Record, error) {
	return s.Log(ctx, user, string(TypeInfo), withMessage("message", message, details), SourceSystem)
}

func withMessage(key, value string, details map[string]any) map[string]any {
	merged := map[string]any{key: value}
	for k, v := range details {
		merged[k] = v
	}
	return merged
}
