package gate

import (
	"testing"

	"github.com/eduflex/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	guest      = models.Actor{}
	student    = models.Actor{ID: 10, Role: models.RoleStudent}
	instructor = models.Actor{ID: 20, Role: models.RoleInstructor}
	admin      = models.Actor{ID: 30, Role: models.RoleAdmin}
)

// assertDenied checks that the denial carries the expected reason
func assertDenied(t *testing.T, d *Denial, reason Reason) {
	t.Helper()
	require.NotNil(t, d)
	assert.Equal(t, reason, d.Reason)
}

func TestDecideCheckout(t *testing.T) {
	published := CourseState{Exists: true, Published: true}
	freeCourse := CourseState{Exists: true, Published: true, Free: true}

	tests := []struct {
		name     string
		actor    models.Actor
		course   CourseState
		enrolled bool
		reason   Reason
	}{
		{name: "guest denied", actor: guest, course: published, reason: ReasonNotAuthenticated},
		{name: "missing course", actor: student, course: CourseState{}, reason: ReasonNotFound},
		{name: "unpublished course", actor: student, course: CourseState{Exists: true}, reason: ReasonNotFound},
		{name: "free course always denied even when otherwise eligible", actor: student, course: freeCourse, reason: ReasonFreeCourse},
		{name: "already enrolled", actor: student, course: published, enrolled: true, reason: ReasonAlreadyEnrolled},
		{name: "allowed", actor: student, course: published},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DecideCheckout(tt.actor, tt.course, tt.enrolled)
			if tt.reason == "" {
				assert.Nil(t, d)
			} else {
				assertDenied(t, d, tt.reason)
			}
		})
	}
}

func TestDecideFreeEnroll(t *testing.T) {
	freeCourse := CourseState{Exists: true, Published: true, Free: true}
	paidCourse := CourseState{Exists: true, Published: true}

	assert.Nil(t, DecideFreeEnroll(student, freeCourse, false))
	assertDenied(t, DecideFreeEnroll(guest, freeCourse, false), ReasonNotAuthenticated)
	assertDenied(t, DecideFreeEnroll(student, paidCourse, false), ReasonInvalidInput)
	assertDenied(t, DecideFreeEnroll(student, freeCourse, true), ReasonAlreadyEnrolled)
}

func TestDecideCreateCourse(t *testing.T) {
	tests := []struct {
		name             string
		actor            models.Actor
		allowSubmissions bool
		title            string
		reason           Reason
	}{
		{name: "student denied", actor: student, allowSubmissions: true, title: "Go Basics", reason: ReasonNotAuthorized},
		{name: "admin is not an instructor", actor: admin, allowSubmissions: true, title: "Go Basics", reason: ReasonNotAuthorized},
		{name: "submissions disabled", actor: instructor, allowSubmissions: false, title: "Go Basics", reason: ReasonSubmissionsDisabled},
		{name: "title too short", actor: instructor, allowSubmissions: true, title: "Go", reason: ReasonInvalidInput},
		{name: "whitespace title too short", actor: instructor, allowSubmissions: true, title: "  a  ", reason: ReasonInvalidInput},
		{name: "allowed", actor: instructor, allowSubmissions: true, title: "Go Basics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DecideCreateCourse(tt.actor, tt.allowSubmissions, tt.title)
			if tt.reason == "" {
				assert.Nil(t, d)
			} else {
				assertDenied(t, d, tt.reason)
			}
		})
	}
}

func TestDecideManageCourse(t *testing.T) {
	owned := CourseState{Exists: true, InstructorID: instructor.ID}
	foreign := CourseState{Exists: true, InstructorID: 999}

	assert.Nil(t, DecideManageCourse(instructor, owned))
	assert.Nil(t, DecideManageCourse(admin, foreign))
	assertDenied(t, DecideManageCourse(guest, owned), ReasonNotAuthenticated)
	assertDenied(t, DecideManageCourse(instructor, CourseState{}), ReasonNotFound)
	assertDenied(t, DecideManageCourse(instructor, foreign), ReasonNotAuthorized)
}

func TestDecidePublishCourse(t *testing.T) {
	owned := CourseState{Exists: true, InstructorID: instructor.ID}

	// Publishing requires completeness, unpublishing never does
	assert.Nil(t, DecidePublishCourse(instructor, owned, true, true))
	assert.Nil(t, DecidePublishCourse(instructor, owned, false, false))
	assertDenied(t, DecidePublishCourse(instructor, owned, true, false), ReasonInvalidInput)
	assertDenied(t, DecidePublishCourse(student, owned, true, true), ReasonNotAuthorized)
}

func TestDecideUpdateUserRole(t *testing.T) {
	tests := []struct {
		name    string
		actor   models.Actor
		target  int
		newRole models.Role
		reason  Reason
	}{
		{name: "non-admin denied", actor: instructor, target: 10, newRole: models.RoleStudent, reason: ReasonNotAuthorized},
		{name: "self change denied regardless of requested role", actor: admin, target: admin.ID, newRole: models.RoleAdmin, reason: ReasonSelfActionForbidden},
		{name: "self demotion also denied", actor: admin, target: admin.ID, newRole: models.RoleStudent, reason: ReasonSelfActionForbidden},
		{name: "invalid role", actor: admin, target: 10, newRole: models.Role(42), reason: ReasonInvalidInput},
		{name: "allowed", actor: admin, target: 10, newRole: models.RoleInstructor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DecideUpdateUserRole(tt.actor, tt.target, tt.newRole)
			if tt.reason == "" {
				assert.Nil(t, d)
			} else {
				assertDenied(t, d, tt.reason)
			}
		})
	}
}

func TestDecideDeleteUser(t *testing.T) {
	assert.Nil(t, DecideDeleteUser(admin, 10))
	assertDenied(t, DecideDeleteUser(student, 10), ReasonNotAuthorized)
	assertDenied(t, DecideDeleteUser(admin, admin.ID), ReasonSelfActionForbidden)
}

func TestDecideAddUser(t *testing.T) {
	tests := []struct {
		name       string
		actor      models.Actor
		userName   string
		email      string
		role       models.Role
		emailTaken bool
		reason     Reason
	}{
		{name: "non-admin denied", actor: instructor, userName: "Ann", email: "ann@example.com", role: models.RoleStudent, reason: ReasonNotAuthorized},
		{name: "missing name", actor: admin, userName: "  ", email: "ann@example.com", role: models.RoleStudent, reason: ReasonInvalidInput},
		{name: "bad email", actor: admin, userName: "Ann", email: "not-an-email", role: models.RoleStudent, reason: ReasonInvalidInput},
		{name: "invalid role", actor: admin, userName: "Ann", email: "ann@example.com", role: models.Role(9), reason: ReasonInvalidInput},
		{name: "duplicate email", actor: admin, userName: "Ann", email: "ann@example.com", role: models.RoleStudent, emailTaken: true, reason: ReasonDuplicateEmail},
		{name: "allowed", actor: admin, userName: "Ann", email: "ann@example.com", role: models.RoleStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DecideAddUser(tt.actor, tt.userName, tt.email, tt.role, tt.emailTaken)
			if tt.reason == "" {
				assert.Nil(t, d)
			} else {
				assertDenied(t, d, tt.reason)
			}
		})
	}
}

func TestDecideCompleteProfile(t *testing.T) {
	newUser := models.Actor{ID: 5, Role: models.RoleNewUser}

	assert.Nil(t, DecideCompleteProfile(newUser, models.RoleStudent))
	assert.Nil(t, DecideCompleteProfile(newUser, models.RoleInstructor))
	assertDenied(t, DecideCompleteProfile(guest, models.RoleStudent), ReasonNotAuthenticated)
	assertDenied(t, DecideCompleteProfile(newUser, models.RoleAdmin), ReasonInvalidInput)
	assertDenied(t, DecideCompleteProfile(newUser, models.RoleNewUser), ReasonInvalidInput)
}

func TestDecideSubmitReview(t *testing.T) {
	tests := []struct {
		name     string
		actor    models.Actor
		rating   int
		enrolled bool
		reason   Reason
	}{
		{name: "guest denied", actor: guest, rating: 5, enrolled: true, reason: ReasonNotAuthenticated},
		{name: "rating too low", actor: student, rating: 0, enrolled: true, reason: ReasonInvalidInput},
		{name: "rating too high", actor: student, rating: 6, enrolled: true, reason: ReasonInvalidInput},
		{name: "not enrolled despite valid rating", actor: student, rating: 5, enrolled: false, reason: ReasonNotEnrolled},
		{name: "allowed", actor: student, rating: 5, enrolled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DecideSubmitReview(tt.actor, tt.rating, tt.enrolled)
			if tt.reason == "" {
				assert.Nil(t, d)
			} else {
				assertDenied(t, d, tt.reason)
			}
		})
	}
}

func TestDecideToggleCompletion(t *testing.T) {
	assert.Nil(t, DecideToggleCompletion(student, LessonAccess{Exists: true, Enrolled: true}))
	assert.Nil(t, DecideToggleCompletion(student, LessonAccess{Exists: true, FreePreview: true}))
	assertDenied(t, DecideToggleCompletion(guest, LessonAccess{Exists: true, Enrolled: true}), ReasonNotAuthenticated)
	assertDenied(t, DecideToggleCompletion(student, LessonAccess{}), ReasonNotFound)
	assertDenied(t, DecideToggleCompletion(student, LessonAccess{Exists: true}), ReasonNotEnrolled)
}

func TestDecideContactMessage(t *testing.T) {
	tests := []struct {
		name          string
		contactName   string
		email         string
		subject       string
		message       string
		expectedField string
	}{
		{name: "valid guest submission", contactName: "Bo", email: "bo@example.com", subject: "Hey", message: "This is long enough."},
		{name: "name too short", contactName: "B", email: "bo@example.com", subject: "Hey", message: "This is long enough.", expectedField: "name"},
		{name: "bad email", contactName: "Bo", email: "nope", subject: "Hey", message: "This is long enough.", expectedField: "email"},
		{name: "subject too short", contactName: "Bo", email: "bo@example.com", subject: "Hi", message: "This is long enough.", expectedField: "subject"},
		{name: "message too short", contactName: "Bo", email: "bo@example.com", subject: "Hey", message: "too short", expectedField: "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DecideContactMessage(tt.contactName, tt.email, tt.subject, tt.message)
			if tt.expectedField == "" {
				assert.Nil(t, d)
			} else {
				assertDenied(t, d, ReasonInvalidInput)
				assert.Equal(t, tt.expectedField, d.Field)
			}
		})
	}
}

func TestAdminOnlyDecisions(t *testing.T) {
	assertDenied(t, DecideAdminTogglePublish(student, true), ReasonNotAuthorized)
	assertDenied(t, DecideAdminTogglePublish(admin, false), ReasonNotFound)
	assert.Nil(t, DecideAdminTogglePublish(admin, true))

	assertDenied(t, DecideAdminDeleteCourse(instructor, true), ReasonNotAuthorized)
	assertDenied(t, DecideAdminDeleteCourse(admin, false), ReasonNotFound)
	assert.Nil(t, DecideAdminDeleteCourse(admin, true))

	assertDenied(t, DecideModerateMessages(student), ReasonNotAuthorized)
	assert.Nil(t, DecideModerateMessages(admin))

	assertDenied(t, DecideUpdateSettings(instructor), ReasonNotAuthorized)
	assert.Nil(t, DecideUpdateSettings(admin))
}

func TestAsDenial(t *testing.T) {
	d := Deny(ReasonNotAuthorized, "nope")

	unwrapped, ok := AsDenial(d)
	assert.True(t, ok)
	assert.Equal(t, d, unwrapped)

	_, ok = AsDenial(assert.AnError)
	assert.False(t, ok)
}
