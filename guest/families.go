package guest

import (
	"fmt"
	"strings"
	"time"

	"github.com/coreyberla/virtopt"
	"github.com/coreyberla/virtopt/parse"
	"github.com/coreyberla/virtopt/util"
)

// RegisterFamilies installs the guest option families into the engine
// registry. Call it once at startup; repeat calls are no-ops.
func RegisterFamilies() error {
	for _, f := range []*virtopt.Family{
		diskFamily(),
		networkFamily(),
		cpuFamily(),
		clockFamily(),
		metadataFamily(),
		qemuCLIFamily(),
	} {
		if err := virtopt.Register(f); err != nil {
			return err
		}
	}

	return nil
}

// --disk path=/var/foo,size=5,bus=virtio,readonly=on
func diskFamily() *virtopt.Family {
	seclabel := virtopt.ChildResolver("seclabels", 0)

	f := virtopt.NewFamily("disk",
		virtopt.WithProp("devices.disk"),
		virtopt.WithRemoveFirst("path"),
		virtopt.WithPreProcess(diskPreProcess))

	f.AddArg("path", "path").
		AddArg("device", "device").
		AddArg("bus", "bus").
		AddArg("serial", "serial").
		AddArg("size", "size", virtopt.WithConvert(diskSizeCB)).
		AddArg("removable", "removable", virtopt.SetOnOff(true)).
		AddArg("readonly", "read_only", virtopt.SetOnOff(true)).
		AddArg("shareable", "shareable", virtopt.SetOnOff(true)).
		AddArg("seclabel#.model", "model", virtopt.WithResolve(seclabel)).
		AddArg("seclabel#.relabel", "relabel",
			virtopt.SetOnOff(true), virtopt.WithResolve(seclabel)).
		AddArg("seclabel#.label", "label",
			virtopt.SetCanComma(true), virtopt.WithResolve(seclabel))
	addDeviceAddressArgs(f)

	return f
}

// addDeviceAddressArgs appends the device address sub-options shared by
// every addressable device family.
func addDeviceAddressArgs(f *virtopt.Family) {
	f.AddArg("address.type", "address.type").
		AddArg("address.domain", "address.domain").
		AddArg("address.bus", "address.bus").
		AddArg("address.slot", "address.slot").
		AddArg("address.function", "address.function")
}

// diskPreProcess rewrites the perms= shorthand into the explicit
// readonly/shareable flags.
func diskPreProcess(p *virtopt.Parser, dict *virtopt.OptDict) error {
	perms, ok := dict.Pop("perms")
	if !ok {
		return nil
	}

	switch perms.Raw {
	case "rw":
	case "ro":
		dict.SetRaw("readonly", "yes")
	case "sh":
		dict.SetRaw("shareable", "yes")
	default:
		return fmt.Errorf("%w: unknown perms value %q", virtopt.ErrConversion, perms.Raw)
	}

	return nil
}

func diskSizeCB(p *virtopt.Parser, target virtopt.Target, val any, arg *virtopt.BoundArg) error {
	if val == nil {
		return target.SetProp("size", float64(0))
	}

	s, ok := val.(string)
	if !ok {
		return fmt.Errorf("%w: size does not take a list value", virtopt.ErrConversion)
	}
	var size float64
	if err := util.ConvertString(s, &size); err != nil {
		return fmt.Errorf("%w: improper value for 'size': %v", virtopt.ErrConversion, err)
	}

	return target.SetProp("size", size)
}

// --network bridge=br0,mac=52:54:00:11:22:33
func networkFamily() *virtopt.Family {
	f := virtopt.NewFamily("network",
		virtopt.WithProp("devices.interface"),
		virtopt.WithRemoveFirst("type"),
		virtopt.WithPreProcess(networkPreProcess))

	f.AddArg("type", "type").
		AddArg("source", "source").
		AddArg("portgroup", "portgroup").
		AddArg("target", "target_dev").
		AddArg("model", "model").
		AddArg("mac", "macaddr", virtopt.WithConvert(networkMacCB)).
		AddArg("link_state", "link_state", virtopt.WithConvert(networkLinkStateCB))
	addDeviceAddressArgs(f)

	return f
}

// networkPreProcess expands the bridge=/network= shorthands into the
// explicit type/source pair when no type was given.
func networkPreProcess(p *virtopt.Parser, dict *virtopt.OptDict) error {
	if _, ok := dict.Get("type"); ok {
		return nil
	}

	if val, ok := dict.Pop("network"); ok {
		dict.SetRaw("type", "network")
		dict.Set("source", val)
	} else if val, ok := dict.Pop("bridge"); ok {
		dict.SetRaw("type", "bridge")
		dict.Set("source", val)
	}

	return nil
}

func networkMacCB(p *virtopt.Parser, target virtopt.Target, val any, arg *virtopt.BoundArg) error {
	s, ok := val.(string)
	if !ok {
		return target.SetProp("macaddr", val)
	}
	if strings.EqualFold(s, "random") {
		return nil
	}

	return target.SetProp("macaddr", s)
}

func networkLinkStateCB(p *virtopt.Parser, target virtopt.Target, val any, arg *virtopt.BoundArg) error {
	s, ok := val.(string)
	if !ok {
		return fmt.Errorf("%w: link_state wants a value", virtopt.ErrConversion)
	}

	switch strings.ToLower(s) {
	case "up", "yes", "on", "true", "t", "y", "1":
		s = "up"
	case "down", "no", "off", "false", "f", "n", "0":
		s = "down"
	default:
		return fmt.Errorf("%w: invalid link_state value %q", virtopt.ErrConversion, s)
	}

	return target.SetProp("link_state", s)
}

var cpuFeaturePolicies = []string{"force", "require", "optional", "disable", "forbid"}

// --cpu host,+vmx,-3dnow,cell0.memory=1024
func cpuFamily() *virtopt.Family {
	cell := virtopt.ChildResolver("cells", 0)
	sibling := virtopt.ChainResolve(cell, virtopt.ChildResolver("siblings", 1))

	f := virtopt.NewFamily("cpu",
		virtopt.WithProp("cpu"),
		virtopt.WithRemoveFirst("model"),
		virtopt.SetStubNone(false),
		virtopt.WithPreProcess(cpuPreProcess))

	f.AddArg("model", "model").
		AddArg("mode", "mode").
		AddArg("match", "match").
		AddArg("vendor", "vendor").
		AddArg("secure", "secure", virtopt.SetOnOff(true))
	for _, policy := range cpuFeaturePolicies {
		f.AddArg(policy, "", virtopt.WithConvert(cpuFeatureCB), virtopt.NoLookup())
	}
	f.AddArg("cell#.id", "id", virtopt.WithResolve(cell)).
		AddArg("cell#.cpus", "cpus",
			virtopt.SetCanComma(true), virtopt.WithResolve(cell)).
		AddArg("cell#.memory", "memory", virtopt.WithResolve(cell)).
		AddArg("cell#.distances.sibling#.id", "id", virtopt.WithResolve(sibling)).
		AddArg("cell#.distances.sibling#.value", "value", virtopt.WithResolve(sibling))

	return f
}

// cpuPreProcess aggregates repeated feature policy names into list
// values, since the mapping itself is last-write-wins, and folds the
// +feature/-feature shorthands into the force/disable lists.
func cpuPreProcess(p *virtopt.Parser, dict *virtopt.OptDict) error {
	policies := make(map[string][]string)

	// The mapping kept only the last value per policy name; recover the
	// full sequence from the raw string.
	tuples, err := parse.OptionTuples(p.Optstr())
	if err != nil {
		return err
	}
	for _, t := range tuples {
		if !t.HasValue {
			continue
		}
		for _, policy := range cpuFeaturePolicies {
			if t.Name == policy {
				policies[policy] = append(policies[policy], t.Value)
			}
		}
	}

	for _, key := range dict.Keys() {
		if len(key) < 2 || (key[0] != '+' && key[0] != '-') {
			continue
		}
		dict.Pop(key)
		policy := "force"
		if key[0] == '-' {
			policy = "disable"
		}
		policies[policy] = append(policies[policy], key[1:])
	}

	for _, policy := range cpuFeaturePolicies {
		if list := policies[policy]; len(list) > 0 {
			dict.SetList(policy, list)
		}
	}

	return nil
}

func cpuFeatureCB(p *virtopt.Parser, target virtopt.Target, val any, arg *virtopt.BoundArg) error {
	cpu, ok := target.(*CPU)
	if !ok {
		return fmt.Errorf("%w: cpu feature on %T", virtopt.ErrAttrResolution, target)
	}

	names, ok := val.([]string)
	if !ok {
		s, sok := val.(string)
		if !sok {
			return fmt.Errorf("%w: %s wants a feature name", virtopt.ErrConversion, arg.Key)
		}
		names = []string{s}
	}
	for _, name := range names {
		cpu.SetFeature(name, arg.Arg.Name)
	}

	return nil
}

// --clock offset=utc,timer0.name=rtc,timer0.tickpolicy=catchup
func clockFamily() *virtopt.Family {
	timer := virtopt.ChildResolver("timers", 0)

	f := virtopt.NewFamily("clock",
		virtopt.WithProp("clock"),
		virtopt.WithRemoveFirst("offset"))

	f.AddArg("offset", "offset").
		AddArg("timer#.name", "name", virtopt.WithResolve(timer)).
		AddArg("timer#.present", "present",
			virtopt.SetOnOff(true), virtopt.WithResolve(timer)).
		AddArg("timer#.tickpolicy", "tickpolicy", virtopt.WithResolve(timer))

	return f
}

// --metadata name=myvm,title=My VM,created=2024-01-15
//
// The family has no backing prop: the descriptors bind straight onto
// the guest with full attribute paths.
func metadataFamily() *virtopt.Family {
	f := virtopt.NewFamily("metadata",
		virtopt.WithRemoveFirst("name"))

	f.AddArg("name", "name").
		AddArg("title", "metadata.title", virtopt.SetCanComma(true)).
		AddArg("uuid", "metadata.uuid").
		AddArg("description", "metadata.description", virtopt.SetCanComma(true)).
		AddArg("created", "", virtopt.WithConvert(metadataCreatedCB), virtopt.NoLookup())

	return f
}

func metadataCreatedCB(p *virtopt.Parser, target virtopt.Target, val any, arg *virtopt.BoundArg) error {
	g, ok := target.(*Guest)
	if !ok {
		return fmt.Errorf("%w: created on %T", virtopt.ErrAttrResolution, target)
	}
	if val == nil {
		g.Metadata.Created = time.Time{}
		return nil
	}

	s, ok := val.(string)
	if !ok {
		return fmt.Errorf("%w: created does not take a list value", virtopt.ErrConversion)
	}
	var ts time.Time
	if err := util.ConvertString(s, &ts); err != nil {
		return fmt.Errorf("%w: %v", virtopt.ErrConversion, err)
	}
	g.Metadata.Created = ts

	return nil
}

// --qemu-commandline -display gtk,gl=es
//
// The whole option string is raw qemu arguments unless it starts with
// an explicit env=/args=/clearxml= prefix, so the usual mapping is
// discarded and rebuilt from the raw string.
func qemuCLIFamily() *virtopt.Family {
	f := virtopt.NewFamily("qemu_commandline",
		virtopt.WithProp("qemucli"),
		virtopt.WithPreProcess(qemuCLIPreProcess))

	f.AddArg("args", "",
		virtopt.WithConvert(qemuArgsCB), virtopt.NoLookup()).
		AddArg("env", "",
			virtopt.WithConvert(qemuEnvCB), virtopt.NoLookup())

	return f
}

func qemuCLIPreProcess(p *virtopt.Parser, dict *virtopt.OptDict) error {
	for _, key := range dict.Keys() {
		dict.Pop(key)
	}

	optstr := p.Optstr()
	switch {
	case strings.HasPrefix(optstr, "env="):
		dict.SetRaw("env", strings.TrimPrefix(optstr, "env="))
	case strings.HasPrefix(optstr, "args="):
		dict.SetRaw("args", strings.TrimPrefix(optstr, "args="))
	case strings.HasPrefix(optstr, "clearxml="):
		dict.SetRaw("clearxml", strings.TrimPrefix(optstr, "clearxml="))
	default:
		dict.SetRaw("args", optstr)
	}

	return nil
}

func qemuArgsCB(p *virtopt.Parser, target virtopt.Target, val any, arg *virtopt.BoundArg) error {
	q, ok := target.(*QemuCLI)
	if !ok {
		return fmt.Errorf("%w: args on %T", virtopt.ErrAttrResolution, target)
	}
	s, ok := val.(string)
	if !ok {
		return fmt.Errorf("%w: args wants a value", virtopt.ErrConversion)
	}

	words, err := parse.Split(s)
	if err != nil {
		return fmt.Errorf("%w: %v", virtopt.ErrConversion, err)
	}
	q.Args = append(q.Args, words...)

	return nil
}

func qemuEnvCB(p *virtopt.Parser, target virtopt.Target, val any, arg *virtopt.BoundArg) error {
	q, ok := target.(*QemuCLI)
	if !ok {
		return fmt.Errorf("%w: env on %T", virtopt.ErrAttrResolution, target)
	}
	s, ok := val.(string)
	if !ok {
		return fmt.Errorf("%w: env wants a value", virtopt.ErrConversion)
	}

	name, value, found := strings.Cut(s, "=")
	if !found {
		return fmt.Errorf("%w: env expects NAME=VALUE, got %q", virtopt.ErrConversion, s)
	}
	q.Envs = append(q.Envs, EnvVar{Name: name, Value: value})

	return nil
}
