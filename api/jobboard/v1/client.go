package jobboardv1

import (
	"context"

	"google.golang.org/grpc"
)

// JobBoardClient is the client API for the JobBoard service.
type JobBoardClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*Profile, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Profile, error)
	SearchProfiles(ctx context.Context, in *SearchProfilesRequest, opts ...grpc.CallOption) (*SearchProfilesResponse, error)

	StartChat(ctx context.Context, in *StartChatRequest, opts ...grpc.CallOption) (*StartChatResponse, error)
	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*Message, error)
	MarkChatRead(ctx context.Context, in *MarkChatReadRequest, opts ...grpc.CallOption) (*Empty, error)
	WatchChats(ctx context.Context, in *WatchChatsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChatListUpdate], error)
	GetHistory(ctx context.Context, in *GetHistoryRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Message], error)
	SearchUsers(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[SearchUsersRequest, SearchUsersResponse], error)

	PostJob(ctx context.Context, in *PostJobRequest, opts ...grpc.CallOption) (*Job, error)
	ListJobs(ctx context.Context, in *ListJobsRequest, opts ...grpc.CallOption) (*ListJobsResponse, error)
	Apply(ctx context.Context, in *ApplyRequest, opts ...grpc.CallOption) (*Application, error)
	ListApplications(ctx context.Context, in *ListApplicationsRequest, opts ...grpc.CallOption) (*ListApplicationsResponse, error)
	UpdateApplicationStatus(ctx context.Context, in *UpdateApplicationStatusRequest, opts ...grpc.CallOption) (*Application, error)
	ScoreApplication(ctx context.Context, in *ScoreApplicationRequest, opts ...grpc.CallOption) (*Application, error)
	ScoreAllApplications(ctx context.Context, in *ScoreAllApplicationsRequest, opts ...grpc.CallOption) (*ScoreAllApplicationsResponse, error)
	CompareResumes(ctx context.Context, in *CompareResumesRequest, opts ...grpc.CallOption) (*CompareResumesResponse, error)
	GetSettings(ctx context.Context, in *GetSettingsRequest, opts ...grpc.CallOption) (*Settings, error)
	UpdateSettings(ctx context.Context, in *UpdateSettingsRequest, opts ...grpc.CallOption) (*Settings, error)
	GetDashboard(ctx context.Context, in *GetDashboardRequest, opts ...grpc.CallOption) (*Dashboard, error)
	ResetShortlisted(ctx context.Context, in *ResetShortlistedRequest, opts ...grpc.CallOption) (*ResetShortlistedResponse, error)
}

type jobBoardClient struct {
	cc grpc.ClientConnInterface
}

// NewJobBoardClient returns a client that sends every call with the JSON codec.
func NewJobBoardClient(cc grpc.ClientConnInterface) JobBoardClient {
	return &jobBoardClient{cc: cc}
}

func callOpts(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func invoke[Res any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Res, error) {
	out := new(Res)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *jobBoardClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, "Register", in, opts)
}

func (c *jobBoardClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, "Login", in, opts)
}

func (c *jobBoardClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, "GetProfile", in, opts)
}

func (c *jobBoardClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, "UpdateProfile", in, opts)
}

func (c *jobBoardClient) SearchProfiles(ctx context.Context, in *SearchProfilesRequest, opts ...grpc.CallOption) (*SearchProfilesResponse, error) {
	return invoke[SearchProfilesResponse](ctx, c.cc, "SearchProfiles", in, opts)
}

func (c *jobBoardClient) StartChat(ctx context.Context, in *StartChatRequest, opts ...grpc.CallOption) (*StartChatResponse, error) {
	return invoke[StartChatResponse](ctx, c.cc, "StartChat", in, opts)
}

func (c *jobBoardClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*Message, error) {
	return invoke[Message](ctx, c.cc, "SendMessage", in, opts)
}

func (c *jobBoardClient) MarkChatRead(ctx context.Context, in *MarkChatReadRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "MarkChatRead", in, opts)
}

func (c *jobBoardClient) WatchChats(ctx context.Context, in *WatchChatsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChatListUpdate], error) {
	return serverStream[WatchChatsRequest, ChatListUpdate](ctx, c.cc, 0, in, opts)
}

func (c *jobBoardClient) GetHistory(ctx context.Context, in *GetHistoryRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Message], error) {
	return serverStream[GetHistoryRequest, Message](ctx, c.cc, 1, in, opts)
}

func (c *jobBoardClient) SearchUsers(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[SearchUsersRequest, SearchUsersResponse], error) {
	desc := &JobBoard_ServiceDesc.Streams[2]
	stream, err := c.cc.NewStream(ctx, desc, FullMethod(desc.StreamName), callOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[SearchUsersRequest, SearchUsersResponse]{ClientStream: stream}, nil
}

func serverStream[Req, Res any](ctx context.Context, cc grpc.ClientConnInterface, idx int, in *Req, opts []grpc.CallOption) (grpc.ServerStreamingClient[Res], error) {
	desc := &JobBoard_ServiceDesc.Streams[idx]
	stream, err := cc.NewStream(ctx, desc, FullMethod(desc.StreamName), callOpts(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[Req, Res]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *jobBoardClient) PostJob(ctx context.Context, in *PostJobRequest, opts ...grpc.CallOption) (*Job, error) {
	return invoke[Job](ctx, c.cc, "PostJob", in, opts)
}

func (c *jobBoardClient) ListJobs(ctx context.Context, in *ListJobsRequest, opts ...grpc.CallOption) (*ListJobsResponse, error) {
	return invoke[ListJobsResponse](ctx, c.cc, "ListJobs", in, opts)
}

func (c *jobBoardClient) Apply(ctx context.Context, in *ApplyRequest, opts ...grpc.CallOption) (*Application, error) {
	return invoke[Application](ctx, c.cc, "Apply", in, opts)
}

func (c *jobBoardClient) ListApplications(ctx context.Context, in *ListApplicationsRequest, opts ...grpc.CallOption) (*ListApplicationsResponse, error) {
	return invoke[ListApplicationsResponse](ctx, c.cc, "ListApplications", in, opts)
}

func (c *jobBoardClient) UpdateApplicationStatus(ctx context.Context, in *UpdateApplicationStatusRequest, opts ...grpc.CallOption) (*Application, error) {
	return invoke[Application](ctx, c.cc, "UpdateApplicationStatus", in, opts)
}

func (c *jobBoardClient) ScoreApplication(ctx context.Context, in *ScoreApplicationRequest, opts ...grpc.CallOption) (*Application, error) {
	return invoke[Application](ctx, c.cc, "ScoreApplication", in, opts)
}

func (c *jobBoardClient) ScoreAllApplications(ctx context.Context, in *ScoreAllApplicationsRequest, opts ...grpc.CallOption) (*ScoreAllApplicationsResponse, error) {
	return invoke[ScoreAllApplicationsResponse](ctx, c.cc, "ScoreAllApplications", in, opts)
}

func (c *jobBoardClient) CompareResumes(ctx context.Context, in *CompareResumesRequest, opts ...grpc.CallOption) (*CompareResumesResponse, error) {
	return invoke[CompareResumesResponse](ctx, c.cc, "CompareResumes", in, opts)
}

func (c *jobBoardClient) GetSettings(ctx context.Context, in *GetSettingsRequest, opts ...grpc.CallOption) (*Settings, error) {
	return invoke[Settings](ctx, c.cc, "GetSettings", in, opts)
}

func (c *jobBoardClient) UpdateSettings(ctx context.Context, in *UpdateSettingsRequest, opts ...grpc.CallOption) (*Settings, error) {
	return invoke[Settings](ctx, c.cc, "UpdateSettings", in, opts)
}

func (c *jobBoardClient) GetDashboard(ctx context.Context, in *GetDashboardRequest, opts ...grpc.CallOption) (*Dashboard, error) {
	return invoke[Dashboard](ctx, c.cc, "GetDashboard", in, opts)
}

func (c *jobBoardClient) ResetShortlisted(ctx context.Context, in *ResetShortlistedRequest, opts ...grpc.CallOption) (*ResetShortlistedResponse, error) {
	return invoke[ResetShortlistedResponse](ctx, c.cc, "ResetShortlisted", in, opts)
}
