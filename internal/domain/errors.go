package domain

import "errors"

// Доменные ошибки - используются во всех слоях приложения

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrInvalidRole        = errors.New("invalid user role")
	ErrUserInactive       = errors.New("user is inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Vehicle errors
var (
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrInvalidVehicleData = errors.New("invalid vehicle data")
	ErrInvalidFuelType    = errors.New("invalid fuel type")
	ErrInvalidYear        = errors.New("invalid vehicle year")
)

// Consumable errors
var (
	ErrConsumableNotFound    = errors.New("consumable not found")
	ErrInvalidConsumableData = errors.New("invalid consumable data")
)

// ServiceLog errors
var (
	ErrServiceLogNotFound    = errors.New("service log not found")
	ErrInvalidServiceLogData = errors.New("invalid service log data")
)

// Setting errors
var (
	ErrSettingNotFound = errors.New("setting not found")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// General errors
var (
	ErrInternal   = errors.New("internal server error")
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
)
