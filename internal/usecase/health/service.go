package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the service answers with reduced capability.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckFallback indicates the component works through a fallback path.
	CheckFallback CheckResult = "fallback"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckDatabase    = "database"
	CheckFuzzyBoards = "fuzzy_boards"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db     DBPinger
	schema SchemaInspector
}

// New creates a Service. schema can be nil.
func New(db DBPinger, schema SchemaInspector) *Service {
	return &Service{db: db, schema: schema}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks[CheckDatabase] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks[CheckDatabase] = CheckOK

	status := Healthy
	if s.schema != nil {
		ok, err := s.schema.HasBoardSearchText(ctx)
		switch {
		case err != nil:
			checks[CheckFuzzyBoards] = CheckError
			status = Degraded
		case !ok:
			checks[CheckFuzzyBoards] = CheckFallback
			status = Degraded
		default:
			checks[CheckFuzzyBoards] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
