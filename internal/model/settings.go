package model

// NotificationSettings gates which notifications the application emits
type NotificationSettings struct {
	Overdue  bool `json:"overdue" yaml:"overdue"`
	Upcoming bool `json:"upcoming" yaml:"upcoming"`
	Updates  bool `json:"updates" yaml:"updates"`
	Payments bool `json:"payments" yaml:"payments"`
}

// Settings holds user preferences
type Settings struct {
	UserName         string               `json:"userName" yaml:"userName"`
	Logo             *string              `json:"logo" yaml:"logo"`
	Theme            string               `json:"theme" yaml:"theme"`
	DarkMode         bool                 `json:"darkMode" yaml:"darkMode"`
	SidebarCollapsed bool                 `json:"sidebarCollapsed" yaml:"sidebarCollapsed"`
	Notifications    NotificationSettings `json:"notifications" yaml:"notifications"`
}

// DefaultSettings returns the settings used before the user changes anything
func DefaultSettings() Settings {
	return Settings{
		UserName: "Your Name",
		Theme:    "blue",
		Notifications: NotificationSettings{
			Overdue:  true,
			Upcoming: true,
			Updates:  true,
			Payments: true,
		},
	}
}
