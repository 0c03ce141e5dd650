package behaviour

// Behaviour is per-frame logic driven by the render loop.
type Behaviour interface {
	Start()
	Update(deltaTime float32)
}

type behaviourWrapper struct {
	Behaviour Behaviour
	started   bool
}

// BehaviourManager starts each behaviour before its first update and then
// updates all of them once per frame, in the order they were added.
type BehaviourManager struct {
	behaviours []behaviourWrapper
}

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{}
}

func (m *BehaviourManager) Add(behaviour Behaviour) {
	m.behaviours = append(m.behaviours, behaviourWrapper{Behaviour: behaviour, started: false})
}

func (m *BehaviourManager) Remove(behaviour Behaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].Behaviour == behaviour {
			m.behaviours = append(m.behaviours[:i], m.behaviours[i+1:]...)
			return
		}
	}
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

func (m *BehaviourManager) UpdateAll(deltaTime float32) {
	for i := range m.behaviours {
		if !m.behaviours[i].started {
			m.behaviours[i].Behaviour.Start()
			m.behaviours[i].started = true
		}
		m.behaviours[i].Behaviour.Update(deltaTime)
	}
}
