package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"student-hub/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id 与 "email:"+email
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "test-user-" + user.Email
	}
	m.users[user.UserID] = user
	m.users["email:"+user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m.users["email:"+email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	m.users["email:"+user.Email] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	seen := make(map[string]bool)
	for _, u := range m.users {
		if !seen[u.UserID] {
			seen[u.UserID] = true
			result = append(result, *u)
		}
	}
	return result, int64(len(result)), nil
}

// ── Mock CollegeRepository ──

type mockCollegeRepo struct {
	colleges map[string]*model.College
}

func newMockCollegeRepo() *mockCollegeRepo {
	return &mockCollegeRepo{colleges: make(map[string]*model.College)}
}

func (m *mockCollegeRepo) Create(_ context.Context, college *model.College) error {
	if college.CollegeID == "" {
		college.CollegeID = "col-" + college.Code
	}
	m.colleges[college.CollegeID] = college
	return nil
}

func (m *mockCollegeRepo) GetByID(_ context.Context, id string) (*model.College, error) {
	if c, ok := m.colleges[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCollegeRepo) GetByCode(_ context.Context, code string) (*model.College, error) {
	for _, c := range m.colleges {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCollegeRepo) List(_ context.Context) ([]model.College, error) {
	var result []model.College
	for _, c := range m.colleges {
		if c.IsActive {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCollegeRepo) Update(_ context.Context, college *model.College) error {
	m.colleges[college.CollegeID] = college
	return nil
}

func (m *mockCollegeRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.colleges, id)
	return nil
}

func (m *mockCollegeRepo) CountDepartments(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	depts map[string]*model.Department
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{depts: make(map[string]*model.Department)}
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		dept.DepartmentID = "dept-" + dept.Code
	}
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.depts[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) GetByCode(_ context.Context, collegeID, code string) (*model.Department, error) {
	for _, d := range m.depts {
		if d.CollegeID == collegeID && d.Code == code {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.depts {
		if d.IsActive {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockDepartmentRepo) ListByCollege(_ context.Context, collegeID string) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.depts {
		if d.CollegeID == collegeID && d.IsActive {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockDepartmentRepo) Update(_ context.Context, dept *model.Department) error {
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.depts, id)
	return nil
}

func (m *mockDepartmentRepo) CountFaculties(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

// ── Mock ClassroomRepository ──

type mockClassroomRepo struct {
	rooms map[string]*model.Classroom
}

func newMockClassroomRepo() *mockClassroomRepo {
	return &mockClassroomRepo{rooms: make(map[string]*model.Classroom)}
}

func (m *mockClassroomRepo) Create(_ context.Context, room *model.Classroom) error {
	if room.ClassroomID == "" {
		room.ClassroomID = "room-" + room.Name
	}
	m.rooms[room.ClassroomID] = room
	return nil
}

func (m *mockClassroomRepo) GetByID(_ context.Context, id string) (*model.Classroom, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) GetByName(_ context.Context, collegeID, name string) (*model.Classroom, error) {
	for _, r := range m.rooms {
		if r.CollegeID == collegeID && r.Name == name {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) ListByCollege(_ context.Context, collegeID string) ([]model.Classroom, error) {
	var result []model.Classroom
	for _, r := range m.rooms {
		if r.CollegeID == collegeID && r.IsActive {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockClassroomRepo) Update(_ context.Context, room *model.Classroom) error {
	m.rooms[room.ClassroomID] = room
	return nil
}

func (m *mockClassroomRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.rooms, id)
	return nil
}

// ── Mock FacultyRepository ──

type mockFacultyRepo struct {
	faculties map[string]*model.Faculty
}

func newMockFacultyRepo() *mockFacultyRepo {
	return &mockFacultyRepo{faculties: make(map[string]*model.Faculty)}
}

func (m *mockFacultyRepo) Create(_ context.Context, faculty *model.Faculty) error {
	if faculty.FacultyID == "" {
		faculty.FacultyID = "fac-" + faculty.StaffID
	}
	m.faculties[faculty.FacultyID] = faculty
	return nil
}

func (m *mockFacultyRepo) GetByID(_ context.Context, id string) (*model.Faculty, error) {
	if f, ok := m.faculties[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) GetByStaffID(_ context.Context, staffID string) (*model.Faculty, error) {
	for _, f := range m.faculties {
		if f.StaffID == staffID {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.Faculty, error) {
	var result []model.Faculty
	for _, f := range m.faculties {
		if f.DepartmentID == departmentID && f.IsActive {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (m *mockFacultyRepo) Update(_ context.Context, faculty *model.Faculty) error {
	m.faculties[faculty.FacultyID] = faculty
	return nil
}

func (m *mockFacultyRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.faculties, id)
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		subject.SubjectID = "sub-" + subject.Code
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByCode(_ context.Context, departmentID, code string) (*model.Subject, error) {
	for _, s := range m.subjects {
		if s.DepartmentID == departmentID && s.Code == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		if s.DepartmentID == departmentID && s.IsActive {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.subjects, id)
	return nil
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	timetables map[string]*model.Timetable
}

func newMockTimetableRepo() *mockTimetableRepo {
	return &mockTimetableRepo{timetables: make(map[string]*model.Timetable)}
}

func (m *mockTimetableRepo) Create(_ context.Context, timetable *model.Timetable) error {
	if timetable.TimetableID == "" {
		timetable.TimetableID = fmt.Sprintf("tt-%s-%d", timetable.DepartmentID, timetable.Semester)
	}
	m.timetables[timetable.TimetableID] = timetable
	return nil
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id string) (*model.Timetable, error) {
	if t, ok := m.timetables[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) GetByDepartmentAndSemester(_ context.Context, departmentID string, semester int) (*model.Timetable, error) {
	for _, t := range m.timetables {
		if t.DepartmentID == departmentID && t.Semester == semester {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.Timetable, error) {
	var result []model.Timetable
	for _, t := range m.timetables {
		if t.DepartmentID == departmentID && t.IsActive {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTimetableRepo) Update(_ context.Context, timetable *model.Timetable) error {
	m.timetables[timetable.TimetableID] = timetable
	return nil
}

func (m *mockTimetableRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.timetables, id)
	return nil
}

// ── Mock ScheduleEntryRepository ──

// errMockPersist 模拟持久层写入失败
var errMockPersist = errors.New("模拟数据库写入失败")

type mockScheduleEntryRepo struct {
	entries    map[string]*model.ScheduleEntry
	failWrites bool // 置 true 时所有写操作返回 errMockPersist
}

func newMockScheduleEntryRepo() *mockScheduleEntryRepo {
	return &mockScheduleEntryRepo{entries: make(map[string]*model.ScheduleEntry)}
}

func (m *mockScheduleEntryRepo) Create(_ context.Context, entry *model.ScheduleEntry) error {
	if m.failWrites {
		return errMockPersist
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockScheduleEntryRepo) GetByID(_ context.Context, id string) (*model.ScheduleEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleEntryRepo) ListByTimetable(_ context.Context, timetableID string) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if e.TimetableID == timetableID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockScheduleEntryRepo) ListByTimetableDetailed(ctx context.Context, timetableID string) ([]model.ScheduleEntry, error) {
	return m.ListByTimetable(ctx, timetableID)
}

func (m *mockScheduleEntryRepo) Update(_ context.Context, entry *model.ScheduleEntry) error {
	if m.failWrites {
		return errMockPersist
	}
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockScheduleEntryRepo) Delete(_ context.Context, id string) error {
	if m.failWrites {
		return errMockPersist
	}
	delete(m.entries, id)
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
