package apierrors

const (
	MsgValidationFailed   = "validationFailed"
	MsgUnauthorized       = "unauthorized"
	MsgForbidden          = "forbidden"
	MsgInvalidCredentials = "invalidCredentials"
	MsgInvalidUserID      = "invalidUserID"

	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailListTasks      = "failListTasks"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailGetTask        = "failGetTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailSearchTasks    = "failSearchTasks"
	MsgFailArchiveTask    = "failArchiveTask"
	MsgFailTaskStats      = "failTaskStats"

	MsgUserNotFound       = "userNotFound"
	MsgCannotTargetSelf   = "cannotTargetSelf"
	MsgFailListUsers      = "failListUsers"
	MsgFailGetUser        = "failGetUser"
	MsgFailDeleteUser     = "failDeleteUser"
	MsgFailUpdateUserRole = "failUpdateUserRole"
	MsgFailUserStats      = "failUserStats"
	MsgFailRegister       = "failRegister"
	MsgFailLogin          = "failLogin"

	MsgWrongCurrentPassword = "wrongCurrentPassword"
	MsgFailUpdateProfile    = "failUpdateProfile"
	MsgFailUpdatePassword   = "failUpdatePassword"
)
