package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.CourseType == "" {
		return fmt.Errorf("%w: courseType is required", ErrInvalidInput)
	}

	return nil
}
