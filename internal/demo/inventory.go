package demo

import (
	"fmt"

	"focusnav/internal/speech"
)

// inventoryModel lists the fixture items. Items out of stock are skipped.
type inventoryModel struct {
	items     []Item
	announcer *speech.Announcer
}

func (m *inventoryModel) Count() int { return len(m.items) }

func (m *inventoryModel) Label(index int) string { return m.items[index].Name }

func (m *inventoryModel) inStock(index int) bool {
	return index >= 0 && index < len(m.items) && m.items[index].Quantity > 0
}

func (m *inventoryModel) Activate(index int) {
	it := m.items[index]
	m.announcer.Speak(m.announcer.Join(it.Name, fmt.Sprintf("%d in stock", it.Quantity)))
}
