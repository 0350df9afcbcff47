package service

import (
	"context"
	"testing"
	"time"

	"github.com/GreaLake/checkIn/internal/model"
	"github.com/GreaLake/checkIn/internal/model/dto"
	errs "github.com/GreaLake/checkIn/pkg/errors"
)

func newApprovalServiceForTest(store *fakeRecordStore, now time.Time) *ApprovalService {
	s := NewApprovalService(store, newFakeLocker())
	s.now = func() time.Time { return now }
	return s
}

func pendingRecord(t *testing.T, id int64) *model.CheckInRecord {
	t.Helper()
	return &model.CheckInRecord{
		BaseModel:   model.BaseModel{ID: id},
		UserID:      42,
		UserName:    "张三",
		Type:        string(model.TypeConstruction),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-02 08:00:00"),
	}
}

func TestApproveStampsApproverAndTime(t *testing.T) {
	store := &fakeRecordStore{records: []*model.CheckInRecord{pendingRecord(t, 1)}}
	now := mustTime(t, "2026-03-02 09:30:00")
	svc := newApprovalServiceForTest(store, now)

	record, err := svc.Approve(context.Background(), 1, "李主管", &dto.ApproveRequest{WorkContent: "基础验收"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !record.Approved {
		t.Fatal("expected record approved")
	}
	if record.ApprovedBy != "李主管" {
		t.Fatalf("unexpected approver: %s", record.ApprovedBy)
	}
	if record.ApprovalTime == nil || !record.ApprovalTime.Equal(now) {
		t.Fatalf("unexpected approval time: %v", record.ApprovalTime)
	}
	if record.WorkContent != "基础验收" {
		t.Fatalf("expected work content override, got %q", record.WorkContent)
	}
}

func TestApproveIsFinal(t *testing.T) {
	record := pendingRecord(t, 1)
	record.Approved = true
	store := &fakeRecordStore{records: []*model.CheckInRecord{record}}
	svc := newApprovalServiceForTest(store, time.Now())

	_, err := svc.Approve(context.Background(), 1, "李主管", nil)
	def := assertCode(t, err, errs.AlreadyApproved)
	if def.Message != "该记录已经审批通过" {
		t.Fatalf("unexpected message: %s", def.Message)
	}
}

func TestApproveBlockedAfterRejection(t *testing.T) {
	record := pendingRecord(t, 1)
	record.Rejected = true
	store := &fakeRecordStore{records: []*model.CheckInRecord{record}}
	svc := newApprovalServiceForTest(store, time.Now())

	_, err := svc.Approve(context.Background(), 1, "李主管", nil)
	def := assertCode(t, err, errs.AlreadyRejected)
	if def.Message != "该记录已被驳回，无法审批" {
		t.Fatalf("unexpected message: %s", def.Message)
	}
}

func TestApproveMissingRecord(t *testing.T) {
	svc := newApprovalServiceForTest(&fakeRecordStore{}, time.Now())

	_, err := svc.Approve(context.Background(), 99, "李主管", nil)
	def := assertCode(t, err, errs.RecordNotFound)
	if def.Message != "记录不存在" {
		t.Fatalf("unexpected message: %s", def.Message)
	}
}

func TestRejectStampsReason(t *testing.T) {
	store := &fakeRecordStore{records: []*model.CheckInRecord{pendingRecord(t, 1)}}
	now := mustTime(t, "2026-03-02 09:30:00")
	svc := newApprovalServiceForTest(store, now)

	record, err := svc.Reject(context.Background(), 1, "李主管", &dto.RejectRequest{RejectionReason: "位置异常"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !record.Rejected || record.Approved {
		t.Fatal("expected record rejected and not approved")
	}
	if record.RejectedBy != "李主管" || record.RejectionReason != "位置异常" {
		t.Fatalf("unexpected rejection info: %s / %s", record.RejectedBy, record.RejectionReason)
	}
	if record.RejectionTime == nil || !record.RejectionTime.Equal(now) {
		t.Fatalf("unexpected rejection time: %v", record.RejectionTime)
	}
}

func TestRejectBlockedAfterApproval(t *testing.T) {
	record := pendingRecord(t, 1)
	record.Approved = true
	store := &fakeRecordStore{records: []*model.CheckInRecord{record}}
	svc := newApprovalServiceForTest(store, time.Now())

	_, err := svc.Reject(context.Background(), 1, "李主管", nil)
	def := assertCode(t, err, errs.AlreadyApproved)
	if def.Message != "该记录已经审批通过，无法驳回" {
		t.Fatalf("unexpected message: %s", def.Message)
	}
}

func TestRejectIsRepeatable(t *testing.T) {
	record := pendingRecord(t, 1)
	firstAt := mustTime(t, "2026-03-02 09:00:00")
	record.Rejected = true
	record.RejectedBy = "李主管"
	record.RejectionTime = &firstAt
	record.RejectionReason = "位置异常"
	store := &fakeRecordStore{records: []*model.CheckInRecord{record}}

	secondAt := mustTime(t, "2026-03-02 10:00:00")
	svc := newApprovalServiceForTest(store, secondAt)

	updated, err := svc.Reject(context.Background(), 1, "王经理", &dto.RejectRequest{RejectionReason: "补充材料不全"})
	if err != nil {
		t.Fatalf("re-reject must succeed: %v", err)
	}
	if updated.RejectedBy != "王经理" || updated.RejectionReason != "补充材料不全" {
		t.Fatalf("expected rejection info refreshed, got %s / %s", updated.RejectedBy, updated.RejectionReason)
	}
	if !updated.RejectionTime.Equal(secondAt) {
		t.Fatalf("expected rejection time refreshed, got %v", updated.RejectionTime)
	}
}

func TestListPendingExcludesDecided(t *testing.T) {
	approved := pendingRecord(t, 1)
	approved.Approved = true
	approvedAt := mustTime(t, "2026-03-02 09:00:00")
	approved.ApprovalTime = &approvedAt

	rejected := pendingRecord(t, 2)
	rejected.Rejected = true
	rejectedAt := mustTime(t, "2026-03-02 09:10:00")
	rejected.RejectionTime = &rejectedAt

	pending := pendingRecord(t, 3)

	store := &fakeRecordStore{records: []*model.CheckInRecord{approved, rejected, pending}}
	svc := newApprovalServiceForTest(store, time.Now())

	list, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != 3 {
		t.Fatalf("expected only record 3 pending, got %v", list)
	}

	approvedList, err := svc.ListApproved(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(approvedList) != 1 || approvedList[0].ID != 1 {
		t.Fatalf("expected only record 1 approved, got %v", approvedList)
	}

	rejectedList, err := svc.ListRejected(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rejectedList) != 1 || rejectedList[0].ID != 2 {
		t.Fatalf("expected only record 2 rejected, got %v", rejectedList)
	}
}
