package service

import (
	"testing"

	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHierarchy(t *testing.T) {
	env := newTestEnv(t)
	catalog := NewCatalogService(repository.NewCatalogRepository(env.db))

	course, err := catalog.CreateCourse(CourseCreateRequest{Title: "Go Programming"})
	require.NoError(t, err)
	assert.NotEmpty(t, course.Slug)

	subject, err := catalog.CreateSubject(SubjectCreateRequest{CourseID: course.ID, Title: "Basics"})
	require.NoError(t, err)

	module, err := catalog.CreateModule(ModuleCreateRequest{SubjectID: subject.ID, Title: "Syntax"})
	require.NoError(t, err)

	_, err = catalog.CreateChapter(ChapterCreateRequest{ModuleID: module.ID, Title: "Variables"})
	require.NoError(t, err)

	subjects, err := catalog.ListSubjects(course.ID)
	require.NoError(t, err)
	assert.Len(t, subjects, 1)

	chapters, err := catalog.ListChapters(module.ID)
	require.NoError(t, err)
	assert.Len(t, chapters, 1)

	courses, total, err := catalog.ListCourses(1, 10)
	require.NoError(t, err)
	assert.Len(t, courses, 1)
	assert.EqualValues(t, 1, total)
}

func TestCreateSubjectUnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	catalog := NewCatalogService(repository.NewCatalogRepository(env.db))

	_, err := catalog.CreateSubject(SubjectCreateRequest{CourseID: 99, Title: "Orphan"})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
