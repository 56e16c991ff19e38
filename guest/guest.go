// Package guest carries a compact virtual machine configuration model
// and the option-family tables that bind command-line strings onto it.
// It is the reference consumer of the virtopt engine: each family below
// is a trimmed version of the corresponding virt-install table.
package guest

import (
	"fmt"
	"time"
)

// Guest is the root of the configuration graph.
type Guest struct {
	Name     string
	Devices  Devices
	CPU      CPU
	Clock    Clock
	Metadata Metadata
	QemuCLI  QemuCLI
}

func NewGuest() *Guest {
	return &Guest{}
}

func (g *Guest) GetProp(name string) (any, error) {
	switch name {
	case "name":
		return g.Name, nil
	case "devices":
		return &g.Devices, nil
	case "cpu":
		return &g.CPU, nil
	case "clock":
		return &g.Clock, nil
	case "metadata":
		return &g.Metadata, nil
	case "qemucli":
		return &g.QemuCLI, nil
	}

	return nil, fmt.Errorf("guest has no property %q", name)
}

func (g *Guest) SetProp(name string, val any) error {
	switch name {
	case "name":
		return setString(&g.Name, val)
	}

	return fmt.Errorf("guest has no settable property %q", name)
}

// Devices groups the repeating device collections.
type Devices struct {
	Disks      DiskList
	Interfaces InterfaceList
}

func (d *Devices) GetProp(name string) (any, error) {
	switch name {
	case "disk":
		return &d.Disks, nil
	case "interface":
		return &d.Interfaces, nil
	}

	return nil, fmt.Errorf("devices has no property %q", name)
}

func (d *Devices) SetProp(name string, val any) error {
	return fmt.Errorf("devices has no settable property %q", name)
}

// Address is the common device address sub-object.
type Address struct {
	Type     string
	Domain   string
	Bus      string
	Slot     string
	Function string
}

func (a *Address) GetProp(name string) (any, error) {
	switch name {
	case "type":
		return a.Type, nil
	case "domain":
		return a.Domain, nil
	case "bus":
		return a.Bus, nil
	case "slot":
		return a.Slot, nil
	case "function":
		return a.Function, nil
	}

	return nil, fmt.Errorf("address has no property %q", name)
}

func (a *Address) SetProp(name string, val any) error {
	switch name {
	case "type":
		return setString(&a.Type, val)
	case "domain":
		return setString(&a.Domain, val)
	case "bus":
		return setString(&a.Bus, val)
	case "slot":
		return setString(&a.Slot, val)
	case "function":
		return setString(&a.Function, val)
	}

	return fmt.Errorf("address has no settable property %q", name)
}

// Disk models one --disk device.
type Disk struct {
	Path      string
	Device    string
	Bus       string
	Serial    string
	Size      float64
	Removable bool
	ReadOnly  bool
	Shareable bool
	Address   Address
	Seclabels SeclabelList
}

func (d *Disk) GetProp(name string) (any, error) {
	switch name {
	case "path":
		return d.Path, nil
	case "device":
		return d.Device, nil
	case "bus":
		return d.Bus, nil
	case "serial":
		return d.Serial, nil
	case "size":
		return d.Size, nil
	case "removable":
		return d.Removable, nil
	case "read_only":
		return d.ReadOnly, nil
	case "shareable":
		return d.Shareable, nil
	case "address":
		return &d.Address, nil
	case "seclabels":
		return &d.Seclabels, nil
	}

	return nil, fmt.Errorf("disk has no property %q", name)
}

func (d *Disk) SetProp(name string, val any) error {
	switch name {
	case "path":
		return setString(&d.Path, val)
	case "device":
		return setString(&d.Device, val)
	case "bus":
		return setString(&d.Bus, val)
	case "serial":
		return setString(&d.Serial, val)
	case "size":
		f, ok := val.(float64)
		if !ok {
			return fmt.Errorf("size wants a float, got %T", val)
		}
		d.Size = f
		return nil
	case "removable":
		return setBool(&d.Removable, val)
	case "read_only":
		return setBool(&d.ReadOnly, val)
	case "shareable":
		return setBool(&d.Shareable, val)
	}

	return fmt.Errorf("disk has no settable property %q", name)
}

func (d *Disk) ClearProps(leaveStub bool) {
	*d = Disk{}
}

// Seclabel is one seclabel child of a disk.
type Seclabel struct {
	Model   string
	Label   string
	Relabel *bool
}

func (s *Seclabel) GetProp(name string) (any, error) {
	switch name {
	case "model":
		return s.Model, nil
	case "label":
		return s.Label, nil
	case "relabel":
		if s.Relabel == nil {
			return nil, nil
		}
		return *s.Relabel, nil
	}

	return nil, fmt.Errorf("seclabel has no property %q", name)
}

func (s *Seclabel) SetProp(name string, val any) error {
	switch name {
	case "model":
		return setString(&s.Model, val)
	case "label":
		return setString(&s.Label, val)
	case "relabel":
		if val == nil {
			s.Relabel = nil
			return nil
		}
		b, ok := val.(bool)
		if !ok {
			return fmt.Errorf("relabel wants a bool, got %T", val)
		}
		s.Relabel = &b
		return nil
	}

	return fmt.Errorf("seclabel has no settable property %q", name)
}

// Interface models one --network device.
type Interface struct {
	Type      string
	Source    string
	Portgroup string
	TargetDev string
	Model     string
	MacAddr   string
	LinkState string
	Address   Address
}

func (n *Interface) GetProp(name string) (any, error) {
	switch name {
	case "type":
		return n.Type, nil
	case "source":
		return n.Source, nil
	case "portgroup":
		return n.Portgroup, nil
	case "target_dev":
		return n.TargetDev, nil
	case "model":
		return n.Model, nil
	case "macaddr":
		return n.MacAddr, nil
	case "link_state":
		return n.LinkState, nil
	case "address":
		return &n.Address, nil
	}

	return nil, fmt.Errorf("interface has no property %q", name)
}

func (n *Interface) SetProp(name string, val any) error {
	switch name {
	case "type":
		return setString(&n.Type, val)
	case "source":
		return setString(&n.Source, val)
	case "portgroup":
		return setString(&n.Portgroup, val)
	case "target_dev":
		return setString(&n.TargetDev, val)
	case "model":
		return setString(&n.Model, val)
	case "macaddr":
		return setString(&n.MacAddr, val)
	case "link_state":
		return setString(&n.LinkState, val)
	}

	return fmt.Errorf("interface has no settable property %q", name)
}

func (n *Interface) ClearProps(leaveStub bool) {
	*n = Interface{}
}

// CPU models the --cpu singleton.
type CPU struct {
	Model    string
	Mode     string
	Match    string
	Vendor   string
	Secure   bool
	Features []Feature
	Cells    CellList
}

// Feature is a named cpu feature with its policy (force, require,
// optional, disable, forbid).
type Feature struct {
	Name   string
	Policy string
}

func (c *CPU) GetProp(name string) (any, error) {
	switch name {
	case "model":
		return c.Model, nil
	case "mode":
		return c.Mode, nil
	case "match":
		return c.Match, nil
	case "vendor":
		return c.Vendor, nil
	case "secure":
		return c.Secure, nil
	case "cells":
		return &c.Cells, nil
	}

	return nil, fmt.Errorf("cpu has no property %q", name)
}

func (c *CPU) SetProp(name string, val any) error {
	switch name {
	case "model":
		return setString(&c.Model, val)
	case "mode":
		return setString(&c.Mode, val)
	case "match":
		return setString(&c.Match, val)
	case "vendor":
		return setString(&c.Vendor, val)
	case "secure":
		return setBool(&c.Secure, val)
	}

	return fmt.Errorf("cpu has no settable property %q", name)
}

func (c *CPU) ClearProps(leaveStub bool) {
	*c = CPU{}
}

// SetFeature updates the policy of an existing feature or adds it.
func (c *CPU) SetFeature(name, policy string) {
	for i := range c.Features {
		if c.Features[i].Name == name {
			c.Features[i].Policy = policy
			return
		}
	}
	c.Features = append(c.Features, Feature{Name: name, Policy: policy})
}

// Cell is one NUMA cell of the cpu topology.
type Cell struct {
	ID       string
	CPUs     string
	Memory   string
	Siblings SiblingList
}

func (c *Cell) GetProp(name string) (any, error) {
	switch name {
	case "id":
		return c.ID, nil
	case "cpus":
		return c.CPUs, nil
	case "memory":
		return c.Memory, nil
	case "siblings":
		return &c.Siblings, nil
	}

	return nil, fmt.Errorf("cell has no property %q", name)
}

func (c *Cell) SetProp(name string, val any) error {
	switch name {
	case "id":
		return setString(&c.ID, val)
	case "cpus":
		return setString(&c.CPUs, val)
	case "memory":
		return setString(&c.Memory, val)
	}

	return fmt.Errorf("cell has no settable property %q", name)
}

// Sibling is one NUMA distance entry of a cell.
type Sibling struct {
	ID    string
	Value string
}

func (s *Sibling) GetProp(name string) (any, error) {
	switch name {
	case "id":
		return s.ID, nil
	case "value":
		return s.Value, nil
	}

	return nil, fmt.Errorf("sibling has no property %q", name)
}

func (s *Sibling) SetProp(name string, val any) error {
	switch name {
	case "id":
		return setString(&s.ID, val)
	case "value":
		return setString(&s.Value, val)
	}

	return fmt.Errorf("sibling has no settable property %q", name)
}

// Clock models the --clock singleton.
type Clock struct {
	Offset string
	Timers TimerList
}

func (c *Clock) GetProp(name string) (any, error) {
	switch name {
	case "offset":
		return c.Offset, nil
	case "timers":
		return &c.Timers, nil
	}

	return nil, fmt.Errorf("clock has no property %q", name)
}

func (c *Clock) SetProp(name string, val any) error {
	switch name {
	case "offset":
		return setString(&c.Offset, val)
	}

	return fmt.Errorf("clock has no settable property %q", name)
}

func (c *Clock) ClearProps(leaveStub bool) {
	*c = Clock{}
}

// Timer is one timer child of the clock.
type Timer struct {
	Name       string
	TickPolicy string
	Present    *bool
}

func (t *Timer) GetProp(name string) (any, error) {
	switch name {
	case "name":
		return t.Name, nil
	case "tickpolicy":
		return t.TickPolicy, nil
	case "present":
		if t.Present == nil {
			return nil, nil
		}
		return *t.Present, nil
	}

	return nil, fmt.Errorf("timer has no property %q", name)
}

func (t *Timer) SetProp(name string, val any) error {
	switch name {
	case "name":
		return setString(&t.Name, val)
	case "tickpolicy":
		return setString(&t.TickPolicy, val)
	case "present":
		if val == nil {
			t.Present = nil
			return nil
		}
		b, ok := val.(bool)
		if !ok {
			return fmt.Errorf("present wants a bool, got %T", val)
		}
		t.Present = &b
		return nil
	}

	return fmt.Errorf("timer has no settable property %q", name)
}

// Metadata models the descriptive fields set by --metadata.
type Metadata struct {
	Title       string
	UUID        string
	Description string
	Created     time.Time
}

func (m *Metadata) GetProp(name string) (any, error) {
	switch name {
	case "title":
		return m.Title, nil
	case "uuid":
		return m.UUID, nil
	case "description":
		return m.Description, nil
	}

	return nil, fmt.Errorf("metadata has no property %q", name)
}

func (m *Metadata) SetProp(name string, val any) error {
	switch name {
	case "title":
		return setString(&m.Title, val)
	case "uuid":
		return setString(&m.UUID, val)
	case "description":
		return setString(&m.Description, val)
	}

	return fmt.Errorf("metadata has no settable property %q", name)
}

// EnvVar is one env entry of --qemu-commandline.
type EnvVar struct {
	Name  string
	Value string
}

// QemuCLI models the qemu passthrough block.
type QemuCLI struct {
	Args []string
	Envs []EnvVar
}

func (q *QemuCLI) GetProp(name string) (any, error) {
	return nil, fmt.Errorf("qemucli has no property %q", name)
}

func (q *QemuCLI) SetProp(name string, val any) error {
	return fmt.Errorf("qemucli has no settable property %q", name)
}

func (q *QemuCLI) ClearProps(leaveStub bool) {
	*q = QemuCLI{}
}

func setString(dst *string, val any) error {
	if val == nil {
		*dst = ""
		return nil
	}
	s, ok := val.(string)
	if !ok {
		return fmt.Errorf("want a string, got %T", val)
	}
	*dst = s

	return nil
}

func setBool(dst *bool, val any) error {
	if val == nil {
		*dst = false
		return nil
	}
	b, ok := val.(bool)
	if !ok {
		return fmt.Errorf("want a bool, got %T", val)
	}
	*dst = b

	return nil
}
