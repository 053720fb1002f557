package dto

import "inkwell/models"

// AuthSessionDTO is the response body of every successful authentication
// (signup, signin, google-auth): the server-issued access token plus the
// public profile fields the client renders immediately.
type AuthSessionDTO struct {
	AccessToken string `json:"access_token"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
}

// NewAuthSessionDTO pairs a freshly signed token with the user's profile.
func NewAuthSessionDTO(accessToken string, u models.User) AuthSessionDTO {
	return AuthSessionDTO{
		AccessToken: accessToken,
		ProfileImg:  u.PersonalInfo.ProfileImg,
		Username:    u.PersonalInfo.Username,
		Fullname:    u.PersonalInfo.Fullname,
	}
}

// AuthorPersonalInfo is the projected author identity embedded in blog
// responses.
type AuthorPersonalInfo struct {
	Fullname   string `json:"fullname"`
	Username   string `json:"username"`
	ProfileImg string `json:"profile_img"`
}

// AuthorDTO mirrors the nested personal_info shape clients already consume.
type AuthorDTO struct {
	PersonalInfo AuthorPersonalInfo `json:"personal_info"`
}

// NewAuthorDTO projects the public author fields of a user.
func NewAuthorDTO(u models.User) AuthorDTO {
	return AuthorDTO{
		PersonalInfo: AuthorPersonalInfo{
			Fullname:   u.PersonalInfo.Fullname,
			Username:   u.PersonalInfo.Username,
			ProfileImg: u.PersonalInfo.ProfileImg,
		},
	}
}
