package types

type Colors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

type TaskTemplate struct {
	Type            TaskType           `json:"type"`
	Name            string             `json:"name"`
	Icon            string             `json:"icon"`
	Colors          Colors             `json:"colors"`
	DefaultDuration int                `json:"default_duration,omitempty"`
	Verification    VerificationMethod `json:"verification"`
}

var Templates = map[TaskType]TaskTemplate{
	TaskAdView: {
		Type: TaskAdView, Name: "مشاهدة إعلان", Icon: "Video",
		Colors:          Colors{"#EF4444", "#FEE2E2", "#DC2626"},
		DefaultDuration: 30, Verification: VerifyTimerBased,
	},
	TaskYoutubeSubscribe: {
		Type: TaskYoutubeSubscribe, Name: "اشتراك يوتيوب", Icon: "Youtube",
		Colors:       Colors{"#FF0000", "#FFEBEE", "#CC0000"},
		Verification: VerifyCommentValidation,
	},
	TaskYoutubeComment: {
		Type: TaskYoutubeComment, Name: "تعليق يوتيوب", Icon: "MessageCircle",
		Colors:       Colors{"#3B82F6", "#DBEAFE", "#2563EB"},
		Verification: VerifyCommentValidation,
	},
	TaskYoutubeWatch: {
		Type: TaskYoutubeWatch, Name: "مشاهدة فيديو", Icon: "Play",
		Colors:          Colors{"#8B5CF6", "#EDE9FE", "#7C3AED"},
		DefaultDuration: 120, Verification: VerifyClientTracking,
	},
	TaskTelegramJoin: {
		Type: TaskTelegramJoin, Name: "انضمام تليجرام", Icon: "Send",
		Colors:       Colors{"#0088CC", "#E0F2FE", "#0077B5"},
		Verification: VerifyTelegramAPI,
	},
	TaskFacebookFollow: {
		Type: TaskFacebookFollow, Name: "متابعة فيسبوك", Icon: "Facebook",
		Colors:       Colors{"#1877F2", "#E7F3FF", "#166FE5"},
		Verification: VerifyTimerBased,
	},
	TaskInstagramFollow: {
		Type: TaskInstagramFollow, Name: "متابعة انستجرام", Icon: "Instagram",
		Colors:       Colors{"#E4405F", "#FCE7EC", "#C13584"},
		Verification: VerifyTimerBased,
	},
	TaskTwitterFollow: {
		Type: TaskTwitterFollow, Name: "متابعة تويتر", Icon: "Twitter",
		Colors:       Colors{"#1DA1F2", "#E8F5FD", "#0D8BD9"},
		Verification: VerifyTimerBased,
	},
	TaskWebsiteVisit: {
		Type: TaskWebsiteVisit, Name: "زيارة موقع", Icon: "Globe",
		Colors:          Colors{"#10B981", "#D1FAE5", "#059669"},
		DefaultDuration: 15, Verification: VerifyTimerBased,
	},
	TaskLinkClick: {
		Type: TaskLinkClick, Name: "نقر رابط", Icon: "MousePointerClick",
		Colors:       Colors{"#F59E0B", "#FEF3C7", "#D97706"},
		Verification: VerifyAutomatic,
	},
	TaskReferral: {
		Type: TaskReferral, Name: "إحالة صديق", Icon: "Users",
		Colors:       Colors{"#EC4899", "#FCE7F3", "#DB2777"},
		Verification: VerifyAutomatic,
	},
}

// TemplateFor never fails: unknown kinds get the generic globe template.
func TemplateFor(t TaskType) TaskTemplate {
	if tpl, ok := Templates[t]; ok {
		return tpl
	}
	tpl := Templates[TaskWebsiteVisit]
	tpl.Type = t
	return tpl
}
