// Package inventory renders ansible connection metadata for created
// instances as a dynamic-inventory JSON document.
package inventory

import (
	"encoding/json"
	"sort"

	"github.com/emberworks/kiln-ctl/internal/config"
	"github.com/emberworks/kiln-ctl/internal/driver"
	"github.com/emberworks/kiln-ctl/internal/logging"
)

// document is the ansible dynamic-inventory shape: _meta.hostvars plus a
// single all group.
type document struct {
	Meta meta  `json:"_meta"`
	All  group `json:"all"`
}

type meta struct {
	Hostvars map[string]map[string]string `json:"hostvars"`
}

type group struct {
	Hosts []string `json:"hosts"`
}

// Resolver turns a driver name into a driver. It exists so Render does not
// decide how drivers are constructed.
type Resolver func(driverName string) (driver.Driver, error)

// Render builds the inventory document for the given instances. Hosts whose
// driver exposes no connection metadata appear with empty hostvars — a
// documented capability gap, not an error. An unknown driver name fails the
// whole render.
func Render(instances []*config.InstanceMetadata, resolve Resolver) ([]byte, error) {
	doc := document{
		Meta: meta{Hostvars: make(map[string]map[string]string)},
		All:  group{Hosts: make([]string, 0, len(instances))},
	}

	drivers := make(map[string]driver.Driver)

	for _, instance := range instances {
		d, ok := drivers[instance.Driver]
		if !ok {
			var err error
			d, err = resolve(instance.Driver)
			if err != nil {
				return nil, err
			}
			drivers[instance.Driver] = d
		}

		doc.All.Hosts = append(doc.All.Hosts, instance.Name)

		conn := d.AnsibleConnectionOptions(instance.Name)
		if !conn.Supported {
			logging.Debug("driver has no connection metadata", "driver", instance.Driver, "instance", instance.Name)
			doc.Meta.Hostvars[instance.Name] = map[string]string{}
			continue
		}

		doc.Meta.Hostvars[instance.Name] = conn.Vars
	}

	sort.Strings(doc.All.Hosts)

	return json.MarshalIndent(doc, "", "  ")
}
