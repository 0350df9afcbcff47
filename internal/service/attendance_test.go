package service

import (
	"context"
	"testing"
	"time"

	"github.com/GreaLake/checkIn/internal/model"
	"github.com/GreaLake/checkIn/internal/repository"
)

func newAttendanceServiceForTest(store *fakeRecordStore, projects *fakeProjectStore, now time.Time) *AttendanceService {
	s := NewAttendanceService(store, projects)
	s.now = func() time.Time { return now }
	return s
}

func completedRecord(t *testing.T, id int64, userName, typ, checkIn, checkOut string) *model.CheckInRecord {
	t.Helper()
	out := mustTime(t, checkOut)
	return &model.CheckInRecord{
		BaseModel:    model.BaseModel{ID: id},
		UserID:       id,
		UserName:     userName,
		Type:         typ,
		Status:       string(model.StatusCheckedOut),
		CheckInTime:  mustTime(t, checkIn),
		CheckOutTime: &out,
		Approved:     true,
	}
}

func TestStatisticsAggregatesByTypeAndUser(t *testing.T) {
	store := &fakeRecordStore{records: []*model.CheckInRecord{
		completedRecord(t, 1, "张三", string(model.TypeConstruction), "2026-03-02 08:00:00", "2026-03-02 10:00:00"),
		completedRecord(t, 2, "李四", string(model.TypeConstruction), "2026-03-02 08:00:00", "2026-03-02 11:30:00"),
		completedRecord(t, 3, "张三", string(model.TypeTravel), "2026-03-03 08:00:00", "2026-03-03 09:00:00"),
	}}
	svc := newAttendanceServiceForTest(store, &fakeProjectStore{}, time.Now())

	stats, err := svc.Statistics(context.Background(), repository.RecordFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalRecords != 3 {
		t.Fatalf("expected 3 records, got %d", stats.TotalRecords)
	}
	if stats.TotalHours != 6.5 {
		t.Fatalf("expected total 6.5, got %v", stats.TotalHours)
	}
	if stats.ConstructionHours != 5.5 || stats.TravelHours != 1.0 || stats.StopHours != 0.0 {
		t.Fatalf("unexpected type buckets: %v / %v / %v",
			stats.ConstructionHours, stats.TravelHours, stats.StopHours)
	}

	zhangsan := stats.UserStats["张三"]
	if zhangsan == nil || zhangsan.TotalHours != 3.0 || zhangsan.RecordCount != 2 {
		t.Fatalf("unexpected user bucket: %+v", zhangsan)
	}
	if zhangsan.ConstructionHours != 2.0 || zhangsan.TravelHours != 1.0 {
		t.Fatalf("unexpected user type split: %+v", zhangsan)
	}
}

func TestStatisticsSkipsIncompleteRecords(t *testing.T) {
	open := &model.CheckInRecord{
		BaseModel:   model.BaseModel{ID: 1},
		UserName:    "张三",
		Type:        string(model.TypeConstruction),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-02 08:00:00"),
		Approved:    true,
	}
	unapproved := completedRecord(t, 2, "李四", string(model.TypeConstruction), "2026-03-02 08:00:00", "2026-03-02 12:00:00")
	unapproved.Approved = false

	store := &fakeRecordStore{records: []*model.CheckInRecord{open, unapproved}}
	svc := newAttendanceServiceForTest(store, &fakeProjectStore{}, time.Now())

	stats, err := svc.Statistics(context.Background(), repository.RecordFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalRecords != 0 || stats.TotalHours != 0 {
		t.Fatalf("open and unapproved records must be excluded, got %+v", stats)
	}
}

func TestRecordsHonorsStrictDateBounds(t *testing.T) {
	store := &fakeRecordStore{records: []*model.CheckInRecord{
		completedRecord(t, 1, "张三", string(model.TypeConstruction), "2026-03-01 00:00:00", "2026-03-01 08:00:00"),
		completedRecord(t, 2, "张三", string(model.TypeConstruction), "2026-03-02 08:00:00", "2026-03-02 17:00:00"),
		completedRecord(t, 3, "张三", string(model.TypeConstruction), "2026-03-05 08:00:00", "2026-03-05 17:00:00"),
	}}
	svc := newAttendanceServiceForTest(store, &fakeProjectStore{}, time.Now())

	after := mustTime(t, "2026-03-01 00:00:00")
	before := mustTime(t, "2026-03-05 08:00:00")
	records, err := svc.Records(context.Background(), repository.RecordFilter{After: &after, Before: &before})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 边界为严格比较，两端记录都不纳入
	if len(records) != 1 || records[0].ID != 2 {
		t.Fatalf("expected only record 2 within bounds, got %v", records)
	}
}

func TestMonthlySummaryLeapFebruary(t *testing.T) {
	store := &fakeRecordStore{records: []*model.CheckInRecord{
		completedRecord(t, 1, "张三", string(model.TypeConstruction), "2024-02-29 08:00:00", "2024-02-29 17:00:00"),
		completedRecord(t, 2, "李四", string(model.TypeConstruction), "2024-02-29 09:00:00", "2024-02-29 18:00:00"),
		completedRecord(t, 3, "张三", string(model.TypeConstruction), "2024-03-01 08:00:00", "2024-03-01 17:00:00"),
	}}
	svc := newAttendanceServiceForTest(store, &fakeProjectStore{}, time.Now())

	summary, err := svc.MonthlySummary(context.Background(), 2024, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Year != 2024 || summary.Month != 2 {
		t.Fatalf("unexpected window: %d-%d", summary.Year, summary.Month)
	}
	if summary.TotalRecords != 2 {
		t.Fatalf("expected 2 records in Feb 2024, got %d", summary.TotalRecords)
	}
	if summary.TotalHours != 18.0 {
		t.Fatalf("expected 18 hours, got %v", summary.TotalHours)
	}
	if summary.DailyRecords["2024-02-29"] != 2 {
		t.Fatalf("expected 2 records on leap day, got %v", summary.DailyRecords)
	}
	if summary.UserRecords["张三"] != 1 || summary.UserRecords["李四"] != 1 {
		t.Fatalf("unexpected user counts: %v", summary.UserRecords)
	}
}

func TestUserStatisticsCurrentMonthWindow(t *testing.T) {
	store := &fakeRecordStore{records: []*model.CheckInRecord{
		completedRecord(t, 42, "张三", string(model.TypeConstruction), "2026-03-02 08:00:00", "2026-03-02 17:00:00"),
	}}
	older := completedRecord(t, 43, "张三", string(model.TypeConstruction), "2026-01-15 08:00:00", "2026-01-15 16:00:00")
	older.UserID = 42
	// 补录的未来记录只进总量，月度桶以当前时刻为上界
	future := completedRecord(t, 45, "张三", string(model.TypeConstruction), "2026-03-20 08:00:00", "2026-03-20 16:00:00")
	future.UserID = 42
	other := completedRecord(t, 44, "李四", string(model.TypeConstruction), "2026-03-02 08:00:00", "2026-03-02 17:00:00")
	store.records = append(store.records, older, future, other)

	svc := newAttendanceServiceForTest(store, &fakeProjectStore{}, mustTime(t, "2026-03-15 12:00:00"))

	stats, err := svc.UserStatistics(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.MonthRecords != 1 || stats.MonthHours != 9.0 {
		t.Fatalf("unexpected month stats: %+v", stats)
	}
	if stats.TotalRecords != 3 || stats.TotalHours != 25.0 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
}

func TestProjectStatisticsMissingProject(t *testing.T) {
	svc := newAttendanceServiceForTest(&fakeRecordStore{}, &fakeProjectStore{}, time.Now())

	stats, err := svc.ProjectStatistics(context.Background(), "不存在的项目")
	if err != nil {
		t.Fatalf("missing project must not be an error: %v", err)
	}
	if stats.ProjectName != "不存在的项目" || stats.TotalRecords != 0 || stats.TotalHours != 0 {
		t.Fatalf("expected empty result, got %+v", stats)
	}
}

func TestProjectStatisticsCountsOpenRecordsAsZeroHours(t *testing.T) {
	projects := &fakeProjectStore{projects: []*model.Project{{
		BaseModel:   model.BaseModel{ID: 7},
		ProjectName: "宁东光伏一期",
		ProjectCode: "ND-001",
		Status:      string(model.ProjectStatusActive),
	}}}

	done := completedRecord(t, 1, "张三", string(model.TypeConstruction), "2026-03-02 08:00:00", "2026-03-02 16:00:00")
	done.ProjectID = int64Ptr(7)
	open := &model.CheckInRecord{
		BaseModel:   model.BaseModel{ID: 2},
		UserName:    "李四",
		Type:        string(model.TypeConstruction),
		Status:      string(model.StatusCheckedIn),
		CheckInTime: mustTime(t, "2026-03-03 08:00:00"),
		Approved:    true,
		ProjectID:   int64Ptr(7),
	}

	store := &fakeRecordStore{records: []*model.CheckInRecord{done, open}}
	svc := newAttendanceServiceForTest(store, projects, time.Now())

	stats, err := svc.ProjectStatistics(context.Background(), "宁东光伏一期")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 项目口径只看审批，未签退的记录计数但工时为零
	if stats.TotalRecords != 2 {
		t.Fatalf("expected 2 records, got %d", stats.TotalRecords)
	}
	if stats.TotalHours != 8.0 {
		t.Fatalf("expected 8 hours, got %v", stats.TotalHours)
	}
	if stats.DailyRecords["2026-03-03"] != 1 {
		t.Fatalf("unexpected daily counts: %v", stats.DailyRecords)
	}
}

func TestProjectListFiltersIncomplete(t *testing.T) {
	projects := &fakeProjectStore{projects: []*model.Project{
		{BaseModel: model.BaseModel{ID: 2}, ProjectName: "银川变电站改造", ProjectCode: "YC-002", Status: string(model.ProjectStatusActive)},
		{BaseModel: model.BaseModel{ID: 1}, ProjectName: "宁东光伏一期", ProjectCode: "ND-001", Status: string(model.ProjectStatusActive)},
		{BaseModel: model.BaseModel{ID: 3}, ProjectName: "无编码项目", Status: string(model.ProjectStatusActive)},
		{BaseModel: model.BaseModel{ID: 4}, ProjectName: "已完结项目", ProjectCode: "GJ-009", Status: string(model.ProjectStatusCompleted)},
	}}
	svc := newAttendanceServiceForTest(&fakeRecordStore{}, projects, time.Now())

	list, err := svc.ProjectList(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(list))
	}
	if list[0].ProjectCode != "ND-001" || list[1].ProjectCode != "YC-002" {
		t.Fatalf("expected code ascending order, got %v", list)
	}
}

func TestExportRowsAndHeaders(t *testing.T) {
	record := completedRecord(t, 1, "张三", string(model.TypeTravel), "2026-03-02 08:00:00", "2026-03-02 12:15:30")
	record.SubType = string(model.SubTypeDeparture)
	record.Location = "银川东站"
	record.WorkContent = "设备转运"
	approvalAt := mustTime(t, "2026-03-02 09:00:00")
	record.ApprovalTime = &approvalAt

	store := &fakeRecordStore{records: []*model.CheckInRecord{record}}
	svc := newAttendanceServiceForTest(store, &fakeProjectStore{}, time.Now())

	export, err := svc.Export(context.Background(), repository.RecordFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantHeaders := []string{"签到人", "签到类型", "签到时间", "签退时间", "工作时长(小时)", "签到地点", "工作内容", "审批时间"}
	if len(export.Headers) != len(wantHeaders) {
		t.Fatalf("unexpected header count: %v", export.Headers)
	}
	for i, h := range wantHeaders {
		if export.Headers[i] != h {
			t.Fatalf("header %d: expected %q, got %q", i, h, export.Headers[i])
		}
	}

	if export.TotalCount != 1 || len(export.CSVData) != 1 {
		t.Fatalf("expected 1 row, got %d", len(export.CSVData))
	}
	row := export.CSVData[0]
	if row[0] != "张三" {
		t.Fatalf("unexpected user column: %q", row[0])
	}
	if row[1] != "在途打卡（出发）" {
		t.Fatalf("unexpected type label: %q", row[1])
	}
	if row[2] != "2026-03-02 08:00:00" || row[3] != "2026-03-02 12:15:30" {
		t.Fatalf("unexpected time columns: %q / %q", row[2], row[3])
	}
	// 4 小时 15 分 30 秒，截断到分钟后为 4.25
	if row[4] != "4.25" {
		t.Fatalf("unexpected hours column: %q", row[4])
	}
	if row[5] != "银川东站" || row[6] != "设备转运" || row[7] != "2026-03-02 09:00:00" {
		t.Fatalf("unexpected tail columns: %v", row)
	}
}
