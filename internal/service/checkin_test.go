package service

import (
	"context"
	"testing"
	"time"

	"github.com/GreaLake/checkIn/internal/model"
	"github.com/GreaLake/checkIn/internal/model/dto"
	errs "github.com/GreaLake/checkIn/pkg/errors"
)

func newCheckInServiceForTest(store *fakeRecordStore, projects *fakeProjectStore, locker *fakeLocker, now time.Time) *CheckInService {
	s := NewCheckInService(store, projects, locker)
	s.now = func() time.Time { return now }
	return s
}

func assertCode(t *testing.T, err error, want errs.Definition) errs.Definition {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want.Code)
	}
	def, ok := err.(errs.Definition)
	if !ok {
		t.Fatalf("expected Definition error, got %T: %v", err, err)
	}
	if def.Code != want.Code {
		t.Fatalf("expected code %s, got %s (%s)", want.Code, def.Code, def.Message)
	}
	return def
}

func TestCheckInCreatesOpenSession(t *testing.T) {
	store := &fakeRecordStore{}
	now := mustTime(t, "2026-03-02 08:00:00")
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), now)

	record, err := svc.CheckIn(context.Background(), 42, &dto.CheckInRequest{
		UserName: "张三",
		Type:     string(model.TypeConstruction),
		Location: "一号工地",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ID == 0 {
		t.Fatal("expected snowflake id to be assigned")
	}
	if !record.IsCheckedIn() {
		t.Fatalf("expected status checked_in, got %s", record.Status)
	}
	if !record.CheckInTime.Equal(now) {
		t.Fatalf("expected check-in time %v, got %v", now, record.CheckInTime)
	}
	if record.Approved || record.Rejected {
		t.Fatal("new record must start unapproved and unrejected")
	}
	if len(store.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(store.records))
	}
}

func TestCheckInRejectsSameDayDuplicate(t *testing.T) {
	now := mustTime(t, "2026-03-02 14:00:00")
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:   model.BaseModel{ID: 1},
		UserID:      42,
		Type:        string(model.TypeConstruction),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-02 08:00:00"),
	}}}
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), now)

	_, err := svc.CheckIn(context.Background(), 42, &dto.CheckInRequest{Type: string(model.TypeConstruction)})
	def := assertCode(t, err, errs.DuplicateSession)
	if def.Message != "今日施工打卡已签到，请先签退" {
		t.Fatalf("unexpected message: %s", def.Message)
	}
}

func TestCheckInAllowsIndependentChannels(t *testing.T) {
	now := mustTime(t, "2026-03-02 14:00:00")
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:   model.BaseModel{ID: 1},
		UserID:      42,
		Type:        string(model.TypeConstruction),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-02 08:00:00"),
	}}}
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), now)

	if _, err := svc.CheckIn(context.Background(), 42, &dto.CheckInRequest{
		Type:    string(model.TypeTravel),
		SubType: string(model.SubTypeDeparture),
	}); err != nil {
		t.Fatalf("travel check-in must not be blocked by construction session: %v", err)
	}
}

func TestCheckInIgnoresPriorDayOpenSession(t *testing.T) {
	now := mustTime(t, "2026-03-03 08:00:00")
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:   model.BaseModel{ID: 1},
		UserID:      42,
		Type:        string(model.TypeStop),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-02 08:00:00"),
	}}}
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), now)

	if _, err := svc.CheckIn(context.Background(), 42, &dto.CheckInRequest{Type: string(model.TypeStop)}); err != nil {
		t.Fatalf("yesterday's open session must not block today's check-in: %v", err)
	}
}

func TestCheckInValidatesType(t *testing.T) {
	svc := newCheckInServiceForTest(&fakeRecordStore{}, &fakeProjectStore{}, newFakeLocker(), time.Now())

	_, err := svc.CheckIn(context.Background(), 42, &dto.CheckInRequest{})
	def := assertCode(t, err, errs.InvalidArgument)
	if def.Message != "打卡类型不能为空" {
		t.Fatalf("unexpected message: %s", def.Message)
	}

	_, err = svc.CheckIn(context.Background(), 42, &dto.CheckInRequest{Type: "overtime"})
	assertCode(t, err, errs.InvalidArgument)
}

func TestCheckInLockContention(t *testing.T) {
	locker := newFakeLocker()
	locker.held[sessionLockKey(42, string(model.TypeConstruction))] = true
	svc := newCheckInServiceForTest(&fakeRecordStore{}, &fakeProjectStore{}, locker, time.Now())

	_, err := svc.CheckIn(context.Background(), 42, &dto.CheckInRequest{Type: string(model.TypeConstruction)})
	assertCode(t, err, errs.DuplicateSession)
}

func TestCheckInResolvesProjectName(t *testing.T) {
	projects := &fakeProjectStore{projects: []*model.Project{{
		BaseModel:   model.BaseModel{ID: 7},
		ProjectName: "宁东光伏一期",
		ProjectCode: "ND-001",
		Status:      string(model.ProjectStatusActive),
	}}}
	svc := newCheckInServiceForTest(&fakeRecordStore{}, projects, newFakeLocker(), time.Now())

	record, err := svc.CheckIn(context.Background(), 42, &dto.CheckInRequest{
		Type:      string(model.TypeConstruction),
		ProjectID: int64Ptr(7),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ProjectName != "宁东光伏一期" {
		t.Fatalf("expected project name resolved, got %q", record.ProjectName)
	}
}

func TestCheckOutComputesTruncatedHours(t *testing.T) {
	approvedAt := mustTime(t, "2026-03-02 09:00:00")
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:    model.BaseModel{ID: 1},
		UserID:       42,
		Type:         string(model.TypeConstruction),
		Status:       string(model.StatusCheckedIn),
		CheckInTime:  mustTime(t, "2026-03-02 08:00:00"),
		Approved:     true,
		ApprovalTime: &approvedAt,
	}}}
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), mustTime(t, "2026-03-02 18:00:00"))

	record, err := svc.CheckOut(context.Background(), 42, &dto.CheckOutRequest{
		Type:         string(model.TypeConstruction),
		CheckOutTime: "2026-03-02 17:30:45",
		WorkContent:  "基础浇筑",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Status != string(model.StatusCheckedOut) {
		t.Fatalf("expected checked_out, got %s", record.Status)
	}
	// 9 小时 30 分 45 秒，秒数截断后应为 9.5
	if record.WorkHours == nil || *record.WorkHours != 9.5 {
		t.Fatalf("expected 9.5 work hours, got %v", record.WorkHours)
	}
	if record.WorkContent != "基础浇筑" {
		t.Fatalf("unexpected work content: %s", record.WorkContent)
	}
}

func TestCheckOutRequiresOpenSession(t *testing.T) {
	svc := newCheckInServiceForTest(&fakeRecordStore{}, &fakeProjectStore{}, newFakeLocker(), time.Now())

	_, err := svc.CheckOut(context.Background(), 42, &dto.CheckOutRequest{Type: string(model.TypeTravel)})
	def := assertCode(t, err, errs.NoOpenSession)
	if def.Message != "没有找到有效的在途打卡签到记录" {
		t.Fatalf("unexpected message: %s", def.Message)
	}
}

func TestCheckOutRejectsClosedSession(t *testing.T) {
	closedAt := mustTime(t, "2026-03-01 18:00:00")
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:    model.BaseModel{ID: 1},
		UserID:       42,
		Type:         string(model.TypeConstruction),
		Status:       string(model.StatusCheckedOut),
		CheckInTime:  mustTime(t, "2026-03-01 08:00:00"),
		CheckOutTime: &closedAt,
		Approved:     true,
	}}}
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), time.Now())

	_, err := svc.CheckOut(context.Background(), 42, &dto.CheckOutRequest{Type: string(model.TypeConstruction)})
	assertCode(t, err, errs.NoOpenSession)
}

func TestCheckOutRequiresApproval(t *testing.T) {
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:   model.BaseModel{ID: 1},
		UserID:      42,
		Type:        string(model.TypeConstruction),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-02 08:00:00"),
	}}}
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), mustTime(t, "2026-03-02 18:00:00"))

	_, err := svc.CheckOut(context.Background(), 42, &dto.CheckOutRequest{Type: string(model.TypeConstruction)})
	def := assertCode(t, err, errs.NotApproved)
	if def.Message != "签到记录尚未审批通过，无法签退" {
		t.Fatalf("unexpected message: %s", def.Message)
	}
}

func TestCheckOutBlockedForRejectedRecord(t *testing.T) {
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:   model.BaseModel{ID: 1},
		UserID:      42,
		Type:        string(model.TypeConstruction),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-02 08:00:00"),
		Rejected:    true,
	}}}
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), mustTime(t, "2026-03-02 18:00:00"))

	_, err := svc.CheckOut(context.Background(), 42, &dto.CheckOutRequest{Type: string(model.TypeConstruction)})
	def := assertCode(t, err, errs.RecordRejected)
	if def.Message != "签到记录已被驳回，无法签退" {
		t.Fatalf("unexpected message: %s", def.Message)
	}
}

func TestCheckOutRejectsInvalidTimestamps(t *testing.T) {
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:   model.BaseModel{ID: 1},
		UserID:      42,
		Type:        string(model.TypeConstruction),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-02 08:00:00"),
		Approved:    true,
	}}}
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), mustTime(t, "2026-03-02 18:00:00"))

	_, err := svc.CheckOut(context.Background(), 42, &dto.CheckOutRequest{
		Type:         string(model.TypeConstruction),
		CheckOutTime: "03/02/2026 17:00",
	})
	assertCode(t, err, errs.InvalidTimestamp)

	// 签退时间早于签到时间同样视为非法
	_, err = svc.CheckOut(context.Background(), 42, &dto.CheckOutRequest{
		Type:         string(model.TypeConstruction),
		CheckOutTime: "2026-03-02 07:00:00",
	})
	assertCode(t, err, errs.InvalidTimestamp)
}

func TestCheckOutOverwritesConstructionProject(t *testing.T) {
	projects := &fakeProjectStore{projects: []*model.Project{{
		BaseModel:   model.BaseModel{ID: 9},
		ProjectName: "银川变电站改造",
		ProjectCode: "YC-002",
		Status:      string(model.ProjectStatusActive),
	}}}
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:   model.BaseModel{ID: 1},
		UserID:      42,
		Type:        string(model.TypeConstruction),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-02 08:00:00"),
		Approved:    true,
		ProjectID:   int64Ptr(7),
		ProjectName: "宁东光伏一期",
	}}}
	svc := newCheckInServiceForTest(store, projects, newFakeLocker(), mustTime(t, "2026-03-02 18:00:00"))

	record, err := svc.CheckOut(context.Background(), 42, &dto.CheckOutRequest{
		Type:         string(model.TypeConstruction),
		CheckOutTime: "2026-03-02 17:00:00",
		ProjectID:    int64Ptr(9),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ProjectID == nil || *record.ProjectID != 9 {
		t.Fatalf("expected project id 9, got %v", record.ProjectID)
	}
	if record.ProjectName != "银川变电站改造" {
		t.Fatalf("expected project name updated, got %q", record.ProjectName)
	}
}

func TestCheckOutRequiresExplicitTime(t *testing.T) {
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:   model.BaseModel{ID: 1},
		UserID:      42,
		Type:        string(model.TypeConstruction),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-02 08:00:00"),
		Approved:    true,
	}}}
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), mustTime(t, "2026-03-02 18:00:00"))

	_, err := svc.CheckOut(context.Background(), 42, &dto.CheckOutRequest{Type: string(model.TypeConstruction)})
	def := assertCode(t, err, errs.InvalidTimestamp)
	if def.Message != "签退时间不能为空" {
		t.Fatalf("unexpected message: %s", def.Message)
	}
}

func TestCurrentStatusReturnsLatestRecord(t *testing.T) {
	closedAt := mustTime(t, "2026-03-01 18:00:00")
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:    model.BaseModel{ID: 1},
		UserID:       42,
		Type:         string(model.TypeConstruction),
		Status:       string(model.StatusCheckedOut),
		CheckInTime:  mustTime(t, "2026-03-01 08:00:00"),
		CheckOutTime: &closedAt,
		Approved:     true,
	}}}
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), mustTime(t, "2026-03-02 10:00:00"))

	// 已签退的记录也要返回，仅 isCheckedIn 置 false
	status, err := svc.CurrentStatus(context.Background(), 42, string(model.TypeConstruction))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.CurrentRecord == nil {
		t.Fatal("expected latest record even after check-out")
	}
	if status.IsCheckedIn {
		t.Fatal("expected isCheckedIn false for a closed session")
	}
}

func TestCurrentStatusSeesPriorDayOpenSession(t *testing.T) {
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:   model.BaseModel{ID: 1},
		UserID:      42,
		Type:        string(model.TypeTravel),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-01 20:00:00"),
		Approved:    true,
	}}}
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), mustTime(t, "2026-03-02 09:00:00"))

	// 跨天未签退的会话：状态查询与签退必须口径一致
	status, err := svc.CurrentStatus(context.Background(), 42, string(model.TypeTravel))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.IsCheckedIn {
		t.Fatal("expected isCheckedIn true for an open session from yesterday")
	}

	if _, err := svc.CheckOut(context.Background(), 42, &dto.CheckOutRequest{
		Type:         string(model.TypeTravel),
		CheckOutTime: "2026-03-02 09:00:00",
	}); err != nil {
		t.Fatalf("check-out of the same session failed: %v", err)
	}
}

func TestCurrentStatusValidatesType(t *testing.T) {
	svc := newCheckInServiceForTest(&fakeRecordStore{}, &fakeProjectStore{}, newFakeLocker(), time.Now())

	_, err := svc.CurrentStatus(context.Background(), 42, "overtime")
	assertCode(t, err, errs.InvalidArgument)
}

func TestStatusAllReportsThreeChannels(t *testing.T) {
	now := mustTime(t, "2026-03-02 10:00:00")
	store := &fakeRecordStore{records: []*model.CheckInRecord{{
		BaseModel:   model.BaseModel{ID: 1},
		UserID:      42,
		Type:        string(model.TypeTravel),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-02 07:00:00"),
	}}}
	svc := newCheckInServiceForTest(store, &fakeProjectStore{}, newFakeLocker(), now)

	status, err := svc.StatusAll(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if checkedIn, _ := status["travelCheckedIn"].(bool); !checkedIn {
		t.Fatal("expected travelCheckedIn true")
	}
	if checkedIn, _ := status["constructionCheckedIn"].(bool); checkedIn {
		t.Fatal("expected constructionCheckedIn false")
	}
	if status["travelRecord"] == nil {
		t.Fatal("expected travelRecord to carry the open record")
	}
	if status["stopRecord"] != nil {
		t.Fatal("expected stopRecord nil")
	}
}
