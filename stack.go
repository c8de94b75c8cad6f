package overlay

// groupStack is the group context stack: an ordered list of group names,
// most recently used first, each name appearing at most once. Draw commands
// that omit an explicit target group resolve against its front.
type groupStack struct {
	names []string
}

// Push makes name the current group. If the name is already on the stack it
// moves to the front instead of duplicating.
func (s *groupStack) Push(name string) {
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	s.names = append([]string{name}, s.names...)
}

// Peek returns the current group name, or "" if the stack is empty. Draw
// commands peek rather than pop so repeated draws keep targeting the same
// implicit group.
func (s *groupStack) Peek() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[0]
}

// Pop removes and returns the current group name, or "" if the stack is
// empty.
func (s *groupStack) Pop() string {
	if len(s.names) == 0 {
		return ""
	}
	name := s.names[0]
	s.names = s.names[1:]
	return name
}

// Clear empties the stack.
func (s *groupStack) Clear() {
	s.names = nil
}

// Len reports how many names are stacked.
func (s *groupStack) Len() int {
	return len(s.names)
}
