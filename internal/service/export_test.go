package service

// Clock overrides for tests running against a fixed instant.

func (s *Identity) SetClock(now Clock)   { s.now = now }
func (s *Tasks) SetClock(now Clock)      { s.now = now }
func (s *Attendance) SetClock(now Clock) { s.now = now }
func (s *Analytics) SetClock(now Clock)  { s.now = now }
