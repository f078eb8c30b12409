// category_service_test.go
//
// Lead lifecycle and referential-integrity service for the portfolio admin console
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of portfolio-leads.
// portfolio-leads is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// portfolio-leads is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with portfolio-leads.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/portfolio-leads/internal/models"
	"github.com/localnerve/portfolio-leads/internal/types"
)

func TestCategoryNamesAreUnique(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(newTestStore(t), nop)

	_, err := svc.Create(ctx, CategoryInput{Name: "Website", Color: "blue"})
	require.NoError(t, err)
	threeD, err := svc.Create(ctx, CategoryInput{Name: "  3D  "})
	require.NoError(t, err)
	assert.Equal(t, "3D", threeD.Name)
	assert.Equal(t, models.DefaultCategoryColor, threeD.Color)

	_, err = svc.Create(ctx, CategoryInput{Name: " Website "})
	ce := requireErrorType(t, err, types.ErrConflict)
	assert.Equal(t, 409, ce.Code)

	categories, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	_, err = svc.Create(ctx, CategoryInput{Name: "   "})
	requireErrorType(t, err, types.ErrValidation)
}

func TestCategoryUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(newTestStore(t), nop)

	website, err := svc.Create(ctx, CategoryInput{Name: "Website", Color: "blue"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CategoryInput{Name: "3D"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, CategoryInput{ID: website.ID, Name: "3D"})
	requireErrorType(t, err, types.ErrConflict)

	// renaming to its own name is not a conflict and keeps the color
	updated, err := svc.Update(ctx, CategoryInput{ID: website.ID, Name: "Website"})
	require.NoError(t, err)
	assert.Equal(t, "blue", updated.Color)

	updated, err = svc.Update(ctx, CategoryInput{ID: website.ID, Name: "Sites", Color: "red"})
	require.NoError(t, err)
	assert.Equal(t, "Sites", updated.Name)
	assert.Equal(t, "red", updated.Color)

	_, err = svc.Update(ctx, CategoryInput{ID: "missing", Name: "Other"})
	requireErrorType(t, err, types.ErrNotFound)

	_, err = svc.Update(ctx, CategoryInput{Name: "Other"})
	requireErrorType(t, err, types.ErrValidation)
	_, err = svc.Update(ctx, CategoryInput{ID: website.ID})
	requireErrorType(t, err, types.ErrValidation)
}

func TestListSeedsDefaultsOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(newTestStore(t), nop)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			categories, err := svc.List(ctx)
			assert.NoError(t, err)
			assert.Len(t, categories, 6)
		}()
	}
	wg.Wait()

	categories, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 6)
	assert.Equal(t, "3D", categories[0].Name)

	count, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestDeleteGuardIsPerCategory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	categories := NewCategoryService(store, nop)
	projects := NewProjectService(store, nop)

	website, err := categories.Create(ctx, CategoryInput{Name: "Website"})
	require.NoError(t, err)
	threeD, err := categories.Create(ctx, CategoryInput{Name: "3D"})
	require.NoError(t, err)

	project, err := projects.Create(ctx, ProjectInput{Title: "Portfolio", Category: website.ID})
	require.NoError(t, err)

	err = categories.Delete(ctx, website.ID)
	ce := requireErrorType(t, err, types.ErrConflict)
	assert.Equal(t, "Cannot delete category: it is referenced by 1 project(s)", ce.Message)
	assert.Equal(t, int64(1), ce.Extra["projectCount"])

	// an unreferenced category is deletable while another one is referenced
	require.NoError(t, categories.Delete(ctx, threeD.ID))

	require.NoError(t, projects.Delete(ctx, project.ID))
	require.NoError(t, categories.Delete(ctx, website.ID))

	requireErrorType(t, categories.Delete(ctx, website.ID), types.ErrNotFound)
	requireErrorType(t, categories.Delete(ctx, ""), types.ErrValidation)
}

func TestProjectCategoryMustExist(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	categories := NewCategoryService(store, nop)
	projects := NewProjectService(store, nop)
	projects.now = fixedClock(time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC))

	_, err := projects.Create(ctx, ProjectInput{Title: "Ghost", Category: "missing"})
	requireErrorType(t, err, types.ErrNotFound)
	_, err = projects.Create(ctx, ProjectInput{})
	requireErrorType(t, err, types.ErrValidation)

	website, err := categories.Create(ctx, CategoryInput{Name: "Website"})
	require.NoError(t, err)
	project, err := projects.Create(ctx, ProjectInput{Title: "Shop", Tags: []string{"go"}})
	require.NoError(t, err)
	assert.Nil(t, project.CategoryID)

	missing := "missing"
	_, err = projects.Update(ctx, ProjectUpdate{ID: project.ID, ProjectPatch: models.ProjectPatch{CategoryID: &missing}})
	requireErrorType(t, err, types.ErrNotFound)

	updated, err := projects.Update(ctx, ProjectUpdate{ID: project.ID, ProjectPatch: models.ProjectPatch{CategoryID: &website.ID}})
	require.NoError(t, err)
	require.NotNil(t, updated.CategoryID)
	assert.Equal(t, website.ID, *updated.CategoryID)

	listed, err := projects.List(ctx, website.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	_, err = projects.Update(ctx, ProjectUpdate{ID: "missing"})
	requireErrorType(t, err, types.ErrNotFound)
	requireErrorType(t, projects.Delete(ctx, "missing"), types.ErrNotFound)
}
