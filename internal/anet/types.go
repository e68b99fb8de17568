package anet

import (
	"encoding/json"
	"strconv"
)

// CloudServer is one provisioned cloud server. The typed fields cover what
// inventory grouping needs; the full API record is retained for hostvars.
type CloudServer struct {
	InstanceID       string
	Name             string
	IPAddress        string
	PrivateIPAddress string
	Image            string
	ImageDisplayName string
	PlanName         string
	Status           string

	fields map[string]any
}

// UnmarshalJSON keeps the raw record alongside the extracted typed fields.
func (c *CloudServer) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	c.fields = m
	c.InstanceID = stringField(m, "InstanceId", "instanceid", "vm_id")
	c.Name = stringField(m, "vm_description", "vm_name")
	c.IPAddress = stringField(m, "vm_ip_address")
	c.PrivateIPAddress = stringField(m, "vm_private_ip_address")
	c.Image = stringField(m, "vm_image")
	c.ImageDisplayName = stringField(m, "vm_image_display_name")
	c.PlanName = stringField(m, "vm_plan_name")
	c.Status = stringField(m, "vm_status")
	return nil
}

// MarshalJSON writes the raw API record back out unchanged, so cached data
// round-trips. Values built in code (without a raw record) synthesize one.
func (c CloudServer) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Fields())
}

// Fields returns the full API record for this server. For values not built
// from an API response, a record is synthesized from the typed fields.
func (c *CloudServer) Fields() map[string]any {
	if c.fields != nil {
		return c.fields
	}
	return map[string]any{
		"InstanceId":            c.InstanceID,
		"vm_description":        c.Name,
		"vm_ip_address":         c.IPAddress,
		"vm_private_ip_address": c.PrivateIPAddress,
		"vm_image":              c.Image,
		"vm_image_display_name": c.ImageDisplayName,
		"vm_plan_name":          c.PlanName,
		"vm_status":             c.Status,
	}
}

// Address returns the address Ansible should connect to. With private set,
// the private network address is preferred when the server has one.
func (c *CloudServer) Address(private bool) string {
	if private && c.PrivateIPAddress != "" {
		return c.PrivateIPAddress
	}
	return c.IPAddress
}

// Image is one OS image available for provisioning.
type Image struct {
	ImageID      string `json:"imageid"`
	DisplayName  string `json:"displayname"`
	Architecture string `json:"architecture"`
	Version      string `json:"version"`
	OSType       string `json:"ostype"`
	Owner        string `json:"owner"`
}

// Plan is one server size/pricing plan.
type Plan struct {
	Name      string `json:"plan_name"`
	RAM       string `json:"ram"`
	Disk      string `json:"disk"`
	CPUCount  string `json:"cpu_count"`
	RatePerHr string `json:"rate_per_hr"`
	Platform  string `json:"platform"`
}

// SSHKey is one stored public key.
type SSHKey struct {
	ID        string `json:"key_id"`
	Name      string `json:"key_name"`
	PublicKey string `json:"public_key"`
}

// stringField pulls the first present key out of a raw record, tolerating
// the API's habit of returning numbers for identifier fields.
func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return ""
}
