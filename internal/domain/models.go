package domain

import "time"

// Enumerations
const (
	RoleMerchant   Role = "merchant"
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
	RoleStaff      Role = "staff"

	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"

	AttendanceActive    AttendanceStatus = "active"
	AttendanceCompleted AttendanceStatus = "completed"

	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"

	ChargePercentage ChargeType = "percentage"
	ChargeFixed      ChargeType = "fixed"

	ChargeSystem   ChargeCategory = "systemcharge"
	ChargeOptional ChargeCategory = "optional"
)

type Role string
type TaskStatus string
type AttendanceStatus string
type ApprovalStatus string
type ChargeType string
type ChargeCategory string

// IsValid reports whether the role is one of the four known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleMerchant, RoleManager, RoleSupervisor, RoleStaff:
		return true
	}
	return false
}

type UserRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"isActive"`
}

type Employee struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type MembershipStats struct {
	TotalVisits int        `json:"totalVisits"`
	TotalSpent  int64      `json:"totalSpent"`
	LastVisit   *time.Time `json:"lastVisit,omitempty"`
}

type Customer struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	MembershipID    string           `json:"membershipId"`
	MembershipStats *MembershipStats `json:"membershipStats,omitempty"`
	IsActive        bool             `json:"isActive"`
	CreatedBy       string           `json:"createdBy"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type Expense struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedBy     string    `json:"createdBy"`
	Date          time.Time `json:"date"`
}

type Task struct {
	ID               string     `json:"id"`
	TaskName         string     `json:"taskName"`
	TaskMessage      string     `json:"taskMessage"`
	AssignedTo       string     `json:"assignedTo"`
	AssignedBy       string     `json:"assignedBy"`
	DueDate          time.Time  `json:"dueDate"`
	Priority         string     `json:"priority"`
	Category         string     `json:"category"`
	Status           TaskStatus `json:"status"`
	EstimatedTime    int        `json:"estimatedTime"`
	TaskDurationType string     `json:"taskDurationType"`
	CompletionNote   string     `json:"completionNote,omitempty"`
	CompletedTime    *time.Time `json:"completedTime,omitempty"`
}

type AttendanceRecord struct {
	ID             string           `json:"id"`
	User           UserRef          `json:"user"`
	Date           time.Time        `json:"date"`
	StartTime      time.Time        `json:"startTime"`
	EndTime        *time.Time       `json:"endTime,omitempty"`
	Status         AttendanceStatus `json:"status"`
	ApprovalStatus ApprovalStatus   `json:"approvalStatus"`
	Remarks        string           `json:"remarks,omitempty"`
	TotalHours     float64          `json:"totalHours"`
	LateMinutes    int              `json:"lateMinutes"`
	OvertimeHours  float64          `json:"overtimeHours"`
	StartSelfie    string           `json:"startSelfie,omitempty"`
}

type Charge struct {
	ID         string         `json:"id"`
	ChargeName string         `json:"chargeName"`
	ChargeType ChargeType     `json:"chargeType"`
	Value      float64        `json:"value"`
	Category   ChargeCategory `json:"category"`
	Active     bool           `json:"active"`
	CreatedBy  string         `json:"createdBy"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// ListFilter carries the query parameters shared by every list endpoint.
// Zero values are omitted from the request.
type ListFilter struct {
	Search    string
	Role      Role
	Status    string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

// Pagination is the single internal pagination model every backend list
// shape is normalized into.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// NewPagination derives HasNext/HasPrev from current/pages so the flags
// cannot drift from the counters.
func NewPagination(current, pages int, total int64) Pagination {
	if current < 1 {
		current = 1
	}
	if pages < 1 {
		pages = 1
	}
	return Pagination{
		Current: current,
		Pages:   pages,
		Total:   total,
		HasNext: current < pages,
		HasPrev: current > 1,
	}
}

// DashboardData is the role-specific aggregate payload behind the console
// landing page.
type DashboardData struct {
	Role              Role            `json:"role"`
	TotalRevenue      int64           `json:"totalRevenue"`
	TodayRevenue      int64           `json:"todayRevenue"`
	TotalTransactions int64           `json:"totalTransactions"`
	EmployeeCount     int             `json:"employeeCount"`
	CustomerCount     int             `json:"customerCount"`
	PendingTasks      int             `json:"pendingTasks"`
	PendingApprovals  int             `json:"pendingApprovals"`
	TopItems          []DashboardItem `json:"topItems,omitempty"`
	Sales             []SalesPoint    `json:"sales,omitempty"`
}

type DashboardItem struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
	Count  int64  `json:"count"`
}

type SalesPoint struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}
