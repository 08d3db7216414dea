package models

// User roles as returned by the backend.
const (
	RoleClient  = "CLIENT"
	RoleTrainer = "TRAINER"
)

// Time slot statuses.
const (
	SlotAvailable = "AVAILABLE"
	SlotBooked    = "BOOKED"
	SlotCancelled = "CANCELLED"
)

// Booking statuses.
const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

// Training type categories.
const (
	CategoryPersonal = "PERSONAL"
	CategoryGroup    = "GROUP"
)

// ParseModeMarkdown is the Telegram parse mode used for formatted screens.
const ParseModeMarkdown = "Markdown"

// Chat conversation steps.
const (
	StateMainMenu         = "main_menu"
	StateLoginEmail       = "login_email"
	StateLoginPassword    = "login_password"
	StateRegisterRole     = "register_role"
	StateRegisterName     = "register_name"
	StateRegisterEmail    = "register_email"
	StateRegisterPassword = "register_password"
	StateRegisterPhone    = "register_phone"
	StateRegisterExtra    = "register_extra"
	StateBrowseTrainers   = "browse_trainers"
	StateBookSelectType   = "book_select_type"
	StateBookSelectSlot   = "book_select_slot"
	StateBookConfirm      = "book_confirm"
	StateMyBookings       = "my_bookings"
	StateTrainerDashboard = "trainer_dashboard"
	StateEditProfile      = "edit_profile"
	StateSlotSelectType   = "slot_select_type"
	StateSlotEnterStart   = "slot_enter_start"
	StateSlotConfirm      = "slot_confirm"
	StateTypeName         = "type_name"
	StateTypeDescription  = "type_description"
	StateTypeDuration     = "type_duration"
	StateTypeCategory     = "type_category"
	StateTypeMaxClients   = "type_max_clients"
)

const (
	// DefaultRedisTTL is the lifetime of a chat session in the state store, seconds.
	DefaultRedisTTL = 24 * 60 * 60

	// DefaultGroupCapacity is used for GROUP training types without a max-client count.
	DefaultGroupCapacity = 5

	// WorkerQueueSize caps the in-memory reconciliation queue.
	WorkerQueueSize = 1000

	// DefaultPaginationSize is the page size for trainer and slot lists.
	DefaultPaginationSize = 8

	// DefaultBookingsPaginationSize is the page size for a client's booking list.
	DefaultBookingsPaginationSize = 5

	// RateLimitMessages is the number of messages allowed per window.
	RateLimitMessages = 20

	// RateLimitWindow is the message rate-limit window, seconds.
	RateLimitWindow = 60
)

// SlotTimeLayout is the naive wall-clock layout the backend uses for slot
// and booking timestamps. No timezone conversion is ever applied.
const SlotTimeLayout = "2006-01-02T15:04:05"

// SlotInputLayout is the layout accepted from trainers entering a start time.
const SlotInputLayout = "2006-01-02T15:04"
