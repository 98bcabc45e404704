package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/models"
	"github.com/vk-smartminds/practice-platform/internal/repository"
)

func setupAdminStudents(t *testing.T) (*gorm.DB, AdminStudentService, *stubActivityRecorder, curriculum) {
	t.Helper()
	db := newTestDB(t)
	seeded := seedCurriculum(t, db)
	activity := &stubActivityRecorder{}
	svc := NewAdminStudentService(
		repository.NewStudentRepository(db),
		repository.NewClassRepository(db),
		nil,
		testValidator(),
		activity,
		testLogger(),
	)
	return db, svc, activity, seeded
}

func createStudent(t *testing.T, db *gorm.DB, name, email string, classID uint) models.Student {
	t.Helper()
	student := models.Student{
		Name:                 name,
		Email:                email,
		ClassID:              classID,
		School:               "City School",
		Address:              models.Address{City: "Pune", State: "MH", Pincode: "411001"},
		GuardianName:         "Guardian",
		GuardianMobileNumber: "9999999999",
	}
	student.SetPassword("secret1")
	require.NoError(t, db.Create(&student).Error)
	return student
}

func TestAdminStudentServiceListFiltersAndPaginates(t *testing.T) {
	db, svc, _, seeded := setupAdminStudents(t)
	createStudent(t, db, "Asha", "asha@example.com", seeded.classA.ID)
	createStudent(t, db, "Ravi", "ravi@example.com", seeded.classA.ID)
	createStudent(t, db, "Meera", "meera@example.com", seeded.classB.ID)

	result, err := svc.List(context.Background(), dto.AdminStudentListRequest{Page: 1, PageSize: 1, ClassID: seeded.classA.ID})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, int64(2), result.Pagination.TotalItems)
	require.Equal(t, 2, result.Pagination.TotalPages)
	require.Equal(t, "10", result.Items[0].ClassName)

	result, err = svc.List(context.Background(), dto.AdminStudentListRequest{Page: 1, PageSize: 10, Search: "MEER"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, "meera@example.com", result.Items[0].Email)
	require.Equal(t, "12", result.Items[0].ClassName)
}

func TestAdminStudentServiceUpdate(t *testing.T) {
	db, svc, activity, seeded := setupAdminStudents(t)
	asha := createStudent(t, db, "Asha", "asha@example.com", seeded.classA.ID)
	createStudent(t, db, "Ravi", "ravi@example.com", seeded.classA.ID)

	_, err := svc.Update(context.Background(), asha.ID, dto.AdminStudentUpdateRequest{Email: ptrString("ravi@example.com")}, adminActor)
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Update(context.Background(), asha.ID, dto.AdminStudentUpdateRequest{ClassID: ptrUint(999)}, adminActor)
	require.ErrorIs(t, err, ErrParentNotFound)

	updated, err := svc.Update(context.Background(), asha.ID, dto.AdminStudentUpdateRequest{
		ClassID: ptrUint(seeded.classB.ID),
		Address: &dto.AddressPatch{Pincode: ptrString("560001")},
	}, adminActor)
	require.NoError(t, err)
	require.Equal(t, seeded.classB.ID, updated.ClassID)
	require.Equal(t, "12", updated.ClassName)
	require.Equal(t, "560001", updated.Address.Pincode)
	require.Equal(t, "Pune", updated.Address.City)
	require.Equal(t, []string{"student.updated"}, activity.actions())

	var stored models.Student
	require.NoError(t, db.First(&stored, asha.ID).Error)
	require.True(t, stored.CheckPassword("secret1"))
}

func TestAdminStudentServiceUpdateRejectsBlankedFields(t *testing.T) {
	db, svc, activity, seeded := setupAdminStudents(t)
	asha := createStudent(t, db, "Asha", "asha@example.com", seeded.classA.ID)
	ctx := context.Background()

	_, err := svc.Update(ctx, asha.ID, dto.AdminStudentUpdateRequest{GuardianName: ptrString(" ")}, adminActor)
	require.ErrorIs(t, err, ErrBlankField)

	_, err = svc.Update(ctx, asha.ID, dto.AdminStudentUpdateRequest{
		Address: &dto.AddressPatch{City: ptrString("\t")},
	}, adminActor)
	require.ErrorIs(t, err, ErrIncompleteAddress)
	require.Empty(t, activity.actions())

	var stored models.Student
	require.NoError(t, db.First(&stored, asha.ID).Error)
	require.Equal(t, "Guardian", stored.GuardianName)
	require.Equal(t, "Pune", stored.Address.City)
}

func TestAdminStudentServiceDelete(t *testing.T) {
	db, svc, activity, seeded := setupAdminStudents(t)
	asha := createStudent(t, db, "Asha", "asha@example.com", seeded.classA.ID)

	require.NoError(t, svc.Delete(context.Background(), asha.ID, adminActor))
	require.Zero(t, count(t, db, &models.Student{}, ""))
	require.Equal(t, []string{"student.deleted"}, activity.actions())

	err := svc.Delete(context.Background(), asha.ID, adminActor)
	require.ErrorIs(t, err, ErrStudentNotFound)

	_, err = svc.Get(context.Background(), asha.ID)
	require.ErrorIs(t, err, ErrStudentNotFound)
}
