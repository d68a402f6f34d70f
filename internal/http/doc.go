// Package http provides HTTP handlers and middleware for the gym maintenance API.
//
// The router exposes the following endpoints:
//   - GET /equipment, POST /equipment, GET/PUT/DELETE /equipment/{id}: equipment
//     catalog endpoints exchanging the `equipmentDTO` payload defined in
//     equipment_handler.go.
//   - POST /equipment/{id}/check: records a routine check. Body: {"staff"}.
//   - POST /equipment/import: accepts a raw CSV body (name,category,location with
//     optional status,notes) and persists every row as one batch; the first invalid
//     row aborts the import with its row number.
//   - GET /equipment/{id}/photos: lists stored photo records for one equipment id.
//   - GET /checklist, POST /checklist: daily checklist endpoints exchanging the
//     `checklistItemDTO` payload defined in checklist_handler.go.
//   - POST /checklist/{id}/toggle: marks an item complete or incomplete.
//     Body: {"completed","staff"}. Completing requires a staff name.
//   - POST /checklist/complete-all: completes every item for one staff member and
//     writes a single summary ledger entry. Body: {"staff"}.
//   - PUT /checklist/{id}/notes: replaces an item's notes only.
//   - GET /log, POST /log, PUT /log/{id}/status: maintenance ledger endpoints
//     exchanging the `logEntryDTO` payload defined in log_handler.go. Listing
//     accepts search, type, and sortBy (timestamp|type|priority) query parameters
//     and returns newest first by default.
//   - GET /maintenance, POST /maintenance, PUT /maintenance/{id}/status,
//     DELETE /maintenance/{id}: scheduled maintenance endpoints exchanging the
//     `maintenanceDTO` payload defined in maintenance_handler.go. Listing accepts
//     date=YYYY-MM-DD for a calendar day or view=upcoming.
//   - POST /maintenance/complete: completes the checked tasks and writes one
//     ledger entry per task. Body: {"ids","notes","staff"}.
//   - GET /maintenance/overdue: the derived overdue view.
//   - POST /issues: reports an equipment issue; the equipment update and ledger
//     entry are committed together. Body defined in issue_handler.go.
//   - GET /staff, POST /staff, PUT /staff/{id}, DELETE /staff/{id}: staff roster
//     endpoints exchanging the `staffDTO` payload defined in staff_handler.go.
//   - GET /reports/{type}: renders a PDF report (equipment-status, issues,
//     activity-log, summary) over an optional from/to date range.
//   - GET /metrics: Prometheus exposition. GET /healthz: liveness and store ping.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
