package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/learnhub/backend/internal/models"
	"go.uber.org/zap"
)

var errStore = errors.New("store error")

// memoryCourseStore is an in-memory implementation of CourseStore
type memoryCourseStore struct {
	mu           sync.Mutex
	courses      map[string]models.Course
	saveErr      error
	findErr      error
	incrementErr error
	saveCalls    int
}

func newMemoryCourseStore(courses ...models.Course) *memoryCourseStore {
	s := &memoryCourseStore{courses: make(map[string]models.Course)}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func (m *memoryCourseStore) Save(ctx context.Context, course *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	c := *course
	c.ModuleOrder = slices.Clone(course.ModuleOrder)
	m.courses[c.ID] = c
	return nil
}

func (m *memoryCourseStore) FindByID(ctx context.Context, id string) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	c, ok := m.courses[id]
	if !ok {
		return nil, nil
	}
	c.ModuleOrder = slices.Clone(c.ModuleOrder)
	return &c, nil
}

func (m *memoryCourseStore) FindAllByCreator(ctx context.Context, creatorID string) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.Course
	for _, c := range m.courses {
		if c.CreatorID == creatorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryCourseStore) FindAllPublished(ctx context.Context) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.Course
	for _, c := range m.courses {
		if c.IsPublished() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryCourseStore) IncrementEnrolledCount(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.incrementErr != nil {
		return m.incrementErr
	}
	c, ok := m.courses[id]
	if !ok {
		return fmt.Errorf("course %s not found", id)
	}
	c.EnrolledCount++
	m.courses[id] = c
	return nil
}

func (m *memoryCourseStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.courses, id)
	return nil
}

func (m *memoryCourseStore) get(id string) models.Course {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.courses[id]
}

// memoryModuleStore is an in-memory implementation of ModuleStore
type memoryModuleStore struct {
	mu        sync.Mutex
	modules   map[string]models.Module
	saveErr   error
	updateErr error
	deleteErr error
}

func newMemoryModuleStore(modules ...models.Module) *memoryModuleStore {
	s := &memoryModuleStore{modules: make(map[string]models.Module)}
	for _, m := range modules {
		s.modules[m.ID] = m
	}
	return s
}

func (m *memoryModuleStore) Save(ctx context.Context, module *models.Module) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	mod := *module
	mod.LessonOrder = slices.Clone(module.LessonOrder)
	m.modules[mod.ID] = mod
	return nil
}

func (m *memoryModuleStore) FindByID(ctx context.Context, courseID, moduleID string) (*models.Module, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mod, ok := m.modules[moduleID]
	if !ok || mod.CourseID != courseID {
		return nil, nil
	}
	mod.LessonOrder = slices.Clone(mod.LessonOrder)
	return &mod, nil
}

func (m *memoryModuleStore) FindAllByCourse(ctx context.Context, courseID string) ([]models.Module, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Module
	for _, mod := range m.modules {
		if mod.CourseID == courseID {
			out = append(out, mod)
		}
	}
	return out, nil
}

func (m *memoryModuleStore) Delete(ctx context.Context, courseID, moduleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.modules, moduleID)
	return nil
}

func (m *memoryModuleStore) UpdatePartial(ctx context.Context, courseID, moduleID string, fields models.ModuleFields) (*models.Module, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	mod, ok := m.modules[moduleID]
	if !ok || mod.CourseID != courseID {
		return nil, nil
	}
	if fields.Title != nil {
		mod.Title = *fields.Title
	}
	if fields.Description != nil {
		mod.Description = *fields.Description
	}
	if fields.LessonOrder != nil {
		mod.LessonOrder = slices.Clone(fields.LessonOrder)
	}
	mod.UpdatedAt = fields.UpdatedAt
	m.modules[moduleID] = mod
	return &mod, nil
}

func (m *memoryModuleStore) get(id string) (models.Module, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mod, ok := m.modules[id]
	return mod, ok
}

// memoryLessonStore is an in-memory implementation of LessonStore
type memoryLessonStore struct {
	mu      sync.Mutex
	lessons map[string]models.Lesson
	saveErr error
	// modules, when set, limits CountByCourse to lessons whose module still exists
	modules *memoryModuleStore
}

func newMemoryLessonStore(lessons ...models.Lesson) *memoryLessonStore {
	s := &memoryLessonStore{lessons: make(map[string]models.Lesson)}
	for _, l := range lessons {
		s.lessons[l.ID] = l
	}
	return s
}

func (m *memoryLessonStore) Save(ctx context.Context, lesson *models.Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.lessons[lesson.ID] = *lesson
	return nil
}

func (m *memoryLessonStore) FindByID(ctx context.Context, courseID, moduleID, lessonID string) (*models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lessons[lessonID]
	if !ok || l.CourseID != courseID || l.ModuleID != moduleID {
		return nil, nil
	}
	return &l, nil
}

func (m *memoryLessonStore) FindAllByModule(ctx context.Context, courseID, moduleID string) ([]models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Lesson
	for _, l := range m.lessons {
		if l.CourseID == courseID && l.ModuleID == moduleID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memoryLessonStore) CountByCourse(ctx context.Context, courseID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, l := range m.lessons {
		if l.CourseID != courseID {
			continue
		}
		if m.modules != nil {
			if mod, ok := m.modules.get(l.ModuleID); !ok || mod.CourseID != courseID {
				continue
			}
		}
		count++
	}
	return count, nil
}

func (m *memoryLessonStore) Delete(ctx context.Context, courseID, moduleID, lessonID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lessons, lessonID)
	return nil
}

func (m *memoryLessonStore) UpdatePartial(ctx context.Context, courseID, moduleID, lessonID string, fields models.LessonFields) (*models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lessons[lessonID]
	if !ok || l.CourseID != courseID || l.ModuleID != moduleID {
		return nil, nil
	}
	if fields.Title != nil {
		l.Title = *fields.Title
	}
	if fields.Content != nil {
		l.Content = *fields.Content
	}
	if fields.IsPreview != nil {
		l.IsPreview = *fields.IsPreview
	}
	if fields.DurationMinutes != nil {
		l.DurationMinutes = *fields.DurationMinutes
	}
	if fields.Materials != nil {
		l.Materials = *fields.Materials
	}
	l.UpdatedAt = fields.UpdatedAt
	m.lessons[lessonID] = l
	return &l, nil
}

// memoryUserStore is an in-memory implementation of UserStore
type memoryUserStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	findErr  error
	addErr   error
	addCalls int
}

func newMemoryUserStore(users ...models.User) *memoryUserStore {
	s := &memoryUserStore{users: make(map[string]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (m *memoryUserStore) FindByUID(ctx context.Context, uid string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	u, ok := m.users[uid]
	if !ok {
		return nil, nil
	}
	u.EnrolledCourseIDs = slices.Clone(u.EnrolledCourseIDs)
	return &u, nil
}

func (m *memoryUserStore) AddCourseToEnrolled(ctx context.Context, userID, courseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addCalls++
	if m.addErr != nil {
		return m.addErr
	}
	u, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	u.EnrolledCourseIDs = u.EnrolledCourseIDs.Append(courseID)
	m.users[userID] = u
	return nil
}

func (m *memoryUserStore) get(id string) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id]
}

// memoryProgressStore is an in-memory implementation of ProgressStore
type memoryProgressStore struct {
	mu       sync.Mutex
	records  map[string]models.Progress
	getErr   error
	saveErr  error
	getCalls int
}

func newMemoryProgressStore() *memoryProgressStore {
	return &memoryProgressStore{records: make(map[string]models.Progress)}
}

func (m *memoryProgressStore) Get(ctx context.Context, userID, courseID string) (*models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.records[userID+"/"+courseID]
	if !ok {
		return nil, nil
	}
	p.CompletedLessonIDs = slices.Clone(p.CompletedLessonIDs)
	return &p, nil
}

func (m *memoryProgressStore) Save(ctx context.Context, progress *models.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	p := *progress
	p.CompletedLessonIDs = slices.Clone(progress.CompletedLessonIDs)
	m.records[p.UserID+"/"+p.CourseID] = p
	return nil
}

// contentFixture bundles a content service with its in-memory stores
type contentFixture struct {
	courses *memoryCourseStore
	modules *memoryModuleStore
	lessons *memoryLessonStore
	users   *memoryUserStore
	svc     *contentService
}

func newContentFixture(courses ...models.Course) *contentFixture {
	f := &contentFixture{
		courses: newMemoryCourseStore(courses...),
		modules: newMemoryModuleStore(),
		lessons: newMemoryLessonStore(),
		users:   newMemoryUserStore(),
	}
	f.lessons.modules = f.modules
	f.svc = NewContentService(f.courses, f.modules, f.lessons, f.users, zap.NewNop())
	seq := 0
	f.svc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	f.svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return f
}

var (
	creatorA  = models.Identity{ID: "creator-a", Role: models.RoleCreator}
	creatorB  = models.Identity{ID: "creator-b", Role: models.RoleCreator}
	admin     = models.Identity{ID: "admin", Role: models.RoleSuperAdmin}
	student   = models.Identity{ID: "student-1", Role: models.RoleStudent}
	anonymous = models.Identity{}
)

func testCourse(id string, status models.CourseStatus) models.Course {
	return models.Course{
		ID:          id,
		CreatorID:   creatorA.ID,
		Name:        "Course " + id,
		Category:    "languages",
		AccessType:  models.AccessTypeFree,
		Status:      status,
		ModuleOrder: models.OrderList{},
	}
}

func stringPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
