package simulate

// taskStats accumulates one task's response times and missed-deadline
// count without retaining every individual sample.
type taskStats struct {
	count           int
	sum             float64
	max             float64
	missedDeadlines int
}

func (s *taskStats) addResponseTime(rt float64) {
	s.count++
	s.sum += rt
	if rt > s.max {
		s.max = rt
	}
}

func (s *taskStats) avg() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// metricsAccumulator collects the raw counters the simulator updates as
// it processes events; Simulator.report converts them into the public
// Report types once a run finishes.
type metricsAccumulator struct {
	tasks        map[string]*taskStats
	executedTime map[string]float64 // componentID -> total executed time
}

func newMetricsAccumulator() *metricsAccumulator {
	return &metricsAccumulator{
		tasks:        make(map[string]*taskStats),
		executedTime: make(map[string]float64),
	}
}

func (m *metricsAccumulator) statsFor(taskID string) *taskStats {
	s, ok := m.tasks[taskID]
	if !ok {
		s = &taskStats{}
		m.tasks[taskID] = s
	}
	return s
}

func (m *metricsAccumulator) recordResponseTime(taskID string, rt float64) {
	m.statsFor(taskID).addResponseTime(rt)
}

func (m *metricsAccumulator) recordMissedDeadline(taskID string) {
	m.statsFor(taskID).missedDeadlines++
}

func (m *metricsAccumulator) addExecutedTime(componentID string, dt float64) {
	if dt <= 0 {
		return
	}
	m.executedTime[componentID] += dt
}
