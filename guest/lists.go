package guest

import "github.com/coreyberla/virtopt"

// The repeating collections below all follow the same shape: Len/At for
// navigation and AppendNew to grow with a default entry. Items gives
// callers typed access without casting through the engine interfaces.

type DiskList struct {
	items []*Disk
}

func (l *DiskList) Len() int                { return len(l.items) }
func (l *DiskList) At(i int) virtopt.Target { return l.items[i] }
func (l *DiskList) Items() []*Disk          { return l.items }

func (l *DiskList) AppendNew() virtopt.Target {
	d := &Disk{}
	l.items = append(l.items, d)
	return d
}

type InterfaceList struct {
	items []*Interface
}

func (l *InterfaceList) Len() int                { return len(l.items) }
func (l *InterfaceList) At(i int) virtopt.Target { return l.items[i] }
func (l *InterfaceList) Items() []*Interface     { return l.items }

func (l *InterfaceList) AppendNew() virtopt.Target {
	n := &Interface{}
	l.items = append(l.items, n)
	return n
}

type SeclabelList struct {
	items []*Seclabel
}

func (l *SeclabelList) Len() int                { return len(l.items) }
func (l *SeclabelList) At(i int) virtopt.Target { return l.items[i] }
func (l *SeclabelList) Items() []*Seclabel      { return l.items }

func (l *SeclabelList) AppendNew() virtopt.Target {
	s := &Seclabel{}
	l.items = append(l.items, s)
	return s
}

type CellList struct {
	items []*Cell
}

func (l *CellList) Len() int                { return len(l.items) }
func (l *CellList) At(i int) virtopt.Target { return l.items[i] }
func (l *CellList) Items() []*Cell          { return l.items }

func (l *CellList) AppendNew() virtopt.Target {
	c := &Cell{}
	l.items = append(l.items, c)
	return c
}

type SiblingList struct {
	items []*Sibling
}

func (l *SiblingList) Len() int                { return len(l.items) }
func (l *SiblingList) At(i int) virtopt.Target { return l.items[i] }
func (l *SiblingList) Items() []*Sibling       { return l.items }

func (l *SiblingList) AppendNew() virtopt.Target {
	s := &Sibling{}
	l.items = append(l.items, s)
	return s
}

type TimerList struct {
	items []*Timer
}

func (l *TimerList) Len() int                { return len(l.items) }
func (l *TimerList) At(i int) virtopt.Target { return l.items[i] }
func (l *TimerList) Items() []*Timer         { return l.items }

func (l *TimerList) AppendNew() virtopt.Target {
	t := &Timer{}
	l.items = append(l.items, t)
	return t
}
