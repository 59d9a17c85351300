package constants

import (
	"strings"

	apperrors "gym-admin/pkg/errors"
)

// --- СТАТУСЫ ОБОРУДОВАНИЯ ---
const (
	EquipmentAvailable        = "AVAILABLE"
	EquipmentInUse            = "IN_USE"
	EquipmentUnderMaintenance = "UNDER_MAINTENANCE"
	EquipmentOutOfOrder       = "OUT_OF_ORDER"
	EquipmentRetired          = "RETIRED"
)

// --- СТАТУСЫ ОБСЛУЖИВАНИЯ ---
const (
	MaintenanceScheduled  = "SCHEDULED"
	MaintenanceInProgress = "IN_PROGRESS"
	MaintenanceCompleted  = "COMPLETED"
	MaintenanceCancelled  = "CANCELLED"
	MaintenanceOverdue    = "OVERDUE"
)

// --- СТАТУСЫ И ПРИОРИТЕТЫ ТИКЕТОВ ---
const (
	TicketOpen       = "OPEN"
	TicketInProgress = "IN_PROGRESS"
	TicketResolved   = "RESOLVED"
	TicketClosed     = "CLOSED"

	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// --- РОЛИ ПЕРСОНАЛА ---
const (
	RoleTrainer      = "TRAINER"
	RoleManager      = "MANAGER"
	RoleTechnician   = "TECHNICIAN"
	RoleReceptionist = "RECEPTIONIST"
)

var (
	EquipmentStatuses   = []string{EquipmentAvailable, EquipmentInUse, EquipmentUnderMaintenance, EquipmentOutOfOrder, EquipmentRetired}
	MaintenanceStatuses = []string{MaintenanceScheduled, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled, MaintenanceOverdue}
	TicketStatuses      = []string{TicketOpen, TicketInProgress, TicketResolved, TicketClosed}
	TicketPriorities    = []string{PriorityLow, PriorityMedium, PriorityHigh}
	StaffRoles          = []string{RoleTrainer, RoleManager, RoleTechnician, RoleReceptionist}
)

// parseEnum - единственная точка разбора перечислений. Регистр не важен,
// неизвестное значение всегда возвращает InvalidInputError.
func parseEnum(kind, raw string, allowed []string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	for _, a := range allowed {
		if a == v {
			return a, nil
		}
	}
	return "", apperrors.NewInvalidInputError("Недопустимое значение %s: '%s' (допустимо: %s)", kind, raw, strings.Join(allowed, ", "))
}

func ParseEquipmentStatus(raw string) (string, error) {
	return parseEnum("статуса оборудования", raw, EquipmentStatuses)
}

func ParseMaintenanceStatus(raw string) (string, error) {
	return parseEnum("статуса обслуживания", raw, MaintenanceStatuses)
}

func ParseTicketStatus(raw string) (string, error) {
	return parseEnum("статуса тикета", raw, TicketStatuses)
}

func ParseTicketPriority(raw string) (string, error) {
	return parseEnum("приоритета", raw, TicketPriorities)
}

func ParseStaffRole(raw string) (string, error) {
	return parseEnum("роли", raw, StaffRoles)
}
