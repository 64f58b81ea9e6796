package models

// Color - цветовой класс результата для отрисовки
type Color string

const (
	ColorDefault Color = "default"
	ColorGreen   Color = "green"
	ColorRed     Color = "red"
	ColorBlue    Color = "blue"
	ColorGold    Color = "gold"
)

// Command - команда запуска игры, приходит извне
type Command struct {
	UserID int64  `json:"user_id"`
	Game   string `json:"game"`
	Stake  int64  `json:"stake"`
	Target string `json:"target,omitempty"`
}

// InputEvent - нажатие на элемент управления во время ожидания игры
type InputEvent struct {
	UserID    int64  `json:"user_id"`
	ControlID string `json:"control_id"`
}

// Control - интерактивный элемент управления, предлагаемый пользователю
type Control struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Action string `json:"action"`
}

// Result - описание состояния игры для отрисовки внешним сервисом
type Result struct {
	SessionID   string    `json:"session_id"`
	Game        string    `json:"game"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Outcome     int64     `json:"outcome"`
	Color       Color     `json:"color"`
	Payload     any       `json:"payload,omitempty"`
	Controls    []Control `json:"controls,omitempty"`
	Final       bool      `json:"final"`
}

// CardView - карта в том виде, в котором её видит игрок
type CardView struct {
	Rank   string `json:"rank"`
	Suit   string `json:"suit"`
	FaceUp bool   `json:"face_up"`
}

// TablePayload - стол карточной игры
type TablePayload struct {
	Dealer      []CardView `json:"dealer"`
	Player      []CardView `json:"player"`
	DealerValue int        `json:"dealer_value"`
	PlayerValue int        `json:"player_value"`
}

// WheelPayload - результат вращения колеса
type WheelPayload struct {
	Pocket  int    `json:"pocket"`
	Target  string `json:"target"`
	Balance int64  `json:"balance"`
}

// ReelsPayload - положения барабанов
type ReelsPayload struct {
	Stops   [3]int `json:"stops"`
	Classes [3]int `json:"classes"`
	Balance int64  `json:"balance"`
}
