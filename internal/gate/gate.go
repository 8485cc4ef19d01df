package gate

import (
	"regexp"
	"strings"

	"github.com/eduflex/backend/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// CourseState is the snapshot of a course a decision needs.
// A zero value means the course reference did not resolve.
type CourseState struct {
	Exists       bool
	Published    bool
	Free         bool
	InstructorID int
}

// LessonAccess is the snapshot needed to decide a completion toggle
type LessonAccess struct {
	Exists      bool
	Enrolled    bool
	FreePreview bool
}

// DecideCheckout gates checkout-session creation for a paid course.
// Conditions in order: authenticated, course exists and is published,
// course is priced, actor not already enrolled.
func DecideCheckout(actor models.Actor, course CourseState, enrolled bool) *Denial {
	if !actor.IsAuthenticated() {
		return Deny(ReasonNotAuthenticated, "sign in to purchase a course")
	}
	if !course.Exists || !course.Published {
		return Deny(ReasonNotFound, "course not found")
	}
	if course.Free {
		return Deny(ReasonFreeCourse, "free courses cannot be purchased")
	}
	if enrolled {
		return Deny(ReasonAlreadyEnrolled, "you already own this course")
	}
	return nil
}

// DecideFreeEnroll gates direct enrollment into a free course
func DecideFreeEnroll(actor models.Actor, course CourseState, enrolled bool) *Denial {
	if !actor.IsAuthenticated() {
		return Deny(ReasonNotAuthenticated, "sign in to enroll")
	}
	if !course.Exists || !course.Published {
		return Deny(ReasonNotFound, "course not found")
	}
	if !course.Free {
		return Deny(ReasonInvalidInput, "this course requires purchase")
	}
	if enrolled {
		return Deny(ReasonAlreadyEnrolled, "you are already enrolled")
	}
	return nil
}

// DecideCreateCourse gates course creation by an instructor
func DecideCreateCourse(actor models.Actor, allowSubmissions bool, title string) *Denial {
	if !actor.IsAuthenticated() || actor.Role != models.RoleInstructor {
		return Deny(ReasonNotAuthorized, "only instructors can create courses")
	}
	if !allowSubmissions {
		return Deny(ReasonSubmissionsDisabled, "course submissions are currently disabled")
	}
	if len(strings.TrimSpace(title)) < 3 {
		return DenyField("title", "title must be at least 3 characters")
	}
	return nil
}

// DecideManageCourse gates any edit of a course and its chapters or lessons.
// The owning instructor and admins may manage; everyone else is rejected.
func DecideManageCourse(actor models.Actor, course CourseState) *Denial {
	if !actor.IsAuthenticated() {
		return Deny(ReasonNotAuthenticated, "authentication required")
	}
	if !course.Exists {
		return Deny(ReasonNotFound, "course not found")
	}
	if actor.Role != models.RoleAdmin && course.InstructorID != actor.ID {
		return Deny(ReasonNotAuthorized, "you do not own this course")
	}
	return nil
}

// DecidePublishCourse gates a publish state change by the owner or an admin.
// Publishing requires every required field present; unpublishing never does.
func DecidePublishCourse(actor models.Actor, course CourseState, publish, requiredFieldsPresent bool) *Denial {
	if d := DecideManageCourse(actor, course); d != nil {
		return d
	}
	if publish && !requiredFieldsPresent {
		return DenyField("course", "complete all required fields before publishing")
	}
	return nil
}

// DecideAdminTogglePublish gates the admin-only publish flip of any course
func DecideAdminTogglePublish(actor models.Actor, exists bool) *Denial {
	if actor.Role != models.RoleAdmin {
		return Deny(ReasonNotAuthorized, "admin access required")
	}
	if !exists {
		return Deny(ReasonNotFound, "course not found")
	}
	return nil
}

// DecideAdminDeleteCourse gates the admin-only deletion of any course
func DecideAdminDeleteCourse(actor models.Actor, exists bool) *Denial {
	if actor.Role != models.RoleAdmin {
		return Deny(ReasonNotAuthorized, "admin access required")
	}
	if !exists {
		return Deny(ReasonNotFound, "course not found")
	}
	return nil
}

// DecideUpdateUserRole gates an admin role change. Admins can never change
// their own role; the requested role must be a persisted one.
func DecideUpdateUserRole(actor models.Actor, targetUserID int, newRole models.Role) *Denial {
	if actor.Role != models.RoleAdmin {
		return Deny(ReasonNotAuthorized, "admin access required")
	}
	if targetUserID == actor.ID {
		return Deny(ReasonSelfActionForbidden, "you cannot change your own role")
	}
	if !newRole.Valid() {
		return DenyField("role", "unknown role")
	}
	return nil
}

// DecideDeleteUser gates an admin user deletion; self-deletion is forbidden
func DecideDeleteUser(actor models.Actor, targetUserID int) *Denial {
	if actor.Role != models.RoleAdmin {
		return Deny(ReasonNotAuthorized, "admin access required")
	}
	if targetUserID == actor.ID {
		return Deny(ReasonSelfActionForbidden, "you cannot delete your own account")
	}
	return nil
}

// DecideAddUser gates admin user creation
func DecideAddUser(actor models.Actor, name, email string, role models.Role, emailTaken bool) *Denial {
	if actor.Role != models.RoleAdmin {
		return Deny(ReasonNotAuthorized, "admin access required")
	}
	if strings.TrimSpace(name) == "" {
		return DenyField("name", "name is required")
	}
	if !emailRegex.MatchString(strings.TrimSpace(strings.ToLower(email))) {
		return DenyField("email", "invalid email format")
	}
	if !role.Valid() {
		return DenyField("role", "unknown role")
	}
	if emailTaken {
		return Deny(ReasonDuplicateEmail, "a user with this email already exists")
	}
	return nil
}

// DecideCompleteProfile gates the new-user role choice
func DecideCompleteProfile(actor models.Actor, chosen models.Role) *Denial {
	if !actor.IsAuthenticated() {
		return Deny(ReasonNotAuthenticated, "authentication required")
	}
	if chosen != models.RoleStudent && chosen != models.RoleInstructor {
		return DenyField("role", "choose either student or instructor")
	}
	return nil
}

// DecideSubmitReview gates review submission: authenticated, rating in
// range, and an enrollment for the course must exist.
func DecideSubmitReview(actor models.Actor, rating int, enrolled bool) *Denial {
	if !actor.IsAuthenticated() {
		return Deny(ReasonNotAuthenticated, "sign in to leave a review")
	}
	if rating < 1 || rating > 5 {
		return DenyField("rating", "rating must be between 1 and 5")
	}
	if !enrolled {
		return Deny(ReasonNotEnrolled, "enroll in the course before reviewing it")
	}
	return nil
}

// DecideToggleWishlist gates the wishlist toggle
func DecideToggleWishlist(actor models.Actor) *Denial {
	if !actor.IsAuthenticated() {
		return Deny(ReasonNotAuthenticated, "sign in to manage your wishlist")
	}
	return nil
}

// DecideToggleCompletion gates a lesson completion toggle. Access requires
// enrollment unless the lesson is flagged as a free preview.
func DecideToggleCompletion(actor models.Actor, lesson LessonAccess) *Denial {
	if !actor.IsAuthenticated() {
		return Deny(ReasonNotAuthenticated, "authentication required")
	}
	if !lesson.Exists {
		return Deny(ReasonNotFound, "lesson not found")
	}
	if !lesson.Enrolled && !lesson.FreePreview {
		return Deny(ReasonNotEnrolled, "enroll in the course to track progress")
	}
	return nil
}

// DecideContactMessage validates a contact form submission. Guests are
// allowed, so there is no authentication check. The first violated field wins.
func DecideContactMessage(name, email, subject, message string) *Denial {
	if len(strings.TrimSpace(name)) < 2 {
		return DenyField("name", "name must be at least 2 characters")
	}
	if !emailRegex.MatchString(strings.TrimSpace(strings.ToLower(email))) {
		return DenyField("email", "invalid email format")
	}
	if len(strings.TrimSpace(subject)) < 3 {
		return DenyField("subject", "subject must be at least 3 characters")
	}
	if len(strings.TrimSpace(message)) < 10 {
		return DenyField("message", "message must be at least 10 characters")
	}
	return nil
}

// DecideModerateMessages gates contact-message status changes and deletion
func DecideModerateMessages(actor models.Actor) *Denial {
	if actor.Role != models.RoleAdmin {
		return Deny(ReasonNotAuthorized, "admin access required")
	}
	return nil
}

// DecideUpdateSettings gates platform settings changes
func DecideUpdateSettings(actor models.Actor) *Denial {
	if actor.Role != models.RoleAdmin {
		return Deny(ReasonNotAuthorized, "admin access required")
	}
	return nil
}
