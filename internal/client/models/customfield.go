package models

// RawCustomField is one record of the customfields endpoint.
type RawCustomField struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortCode string `json:"short_code"`
	Active    bool   `json:"active"`
	Required  bool   `json:"required"`
	Type      string `json:"type"`
	UIType    string `json:"ui_type"`
}

// RawCustomFieldItem is one selectable option of a custom field.
type RawCustomFieldItem struct {
	ID            int64  `json:"id"`
	CustomFieldID int64  `json:"customfield_id"`
	Name          string `json:"name"`
	ShortCode     string `json:"short_code"`
	Active        bool   `json:"active"`
}

// CustomField is an active field with its active items (id -> name).
type CustomField struct {
	ID       int64
	Name     string
	Required bool
	Items    map[int64]string
}
