package handler // handler defines http handlers

import (
    "errors"
    "strconv"

    "github.com/labstack/echo/v4"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// JWTAuth stores the claim value without normalizing its type, so every
// representation the token library may produce is accepted here.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric :param from the route, rejecting zero.
func pathID(c echo.Context, name string) (uint64, error) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, errors.New("invalid id")
    }
    return id, nil
}
