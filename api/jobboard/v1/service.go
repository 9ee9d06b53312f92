package jobboardv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "jobboard.v1.JobBoard"

// FullMethod returns the full gRPC method name for method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// JobBoardServer is the server API for the JobBoard service.
type JobBoardServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*Profile, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*Profile, error)
	SearchProfiles(context.Context, *SearchProfilesRequest) (*SearchProfilesResponse, error)

	StartChat(context.Context, *StartChatRequest) (*StartChatResponse, error)
	SendMessage(context.Context, *SendMessageRequest) (*Message, error)
	MarkChatRead(context.Context, *MarkChatReadRequest) (*Empty, error)
	WatchChats(*WatchChatsRequest, grpc.ServerStreamingServer[ChatListUpdate]) error
	GetHistory(*GetHistoryRequest, grpc.ServerStreamingServer[Message]) error
	SearchUsers(grpc.BidiStreamingServer[SearchUsersRequest, SearchUsersResponse]) error

	PostJob(context.Context, *PostJobRequest) (*Job, error)
	ListJobs(context.Context, *ListJobsRequest) (*ListJobsResponse, error)
	Apply(context.Context, *ApplyRequest) (*Application, error)
	ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error)
	UpdateApplicationStatus(context.Context, *UpdateApplicationStatusRequest) (*Application, error)
	ScoreApplication(context.Context, *ScoreApplicationRequest) (*Application, error)
	ScoreAllApplications(context.Context, *ScoreAllApplicationsRequest) (*ScoreAllApplicationsResponse, error)
	CompareResumes(context.Context, *CompareResumesRequest) (*CompareResumesResponse, error)
	GetSettings(context.Context, *GetSettingsRequest) (*Settings, error)
	UpdateSettings(context.Context, *UpdateSettingsRequest) (*Settings, error)
	GetDashboard(context.Context, *GetDashboardRequest) (*Dashboard, error)
	ResetShortlisted(context.Context, *ResetShortlistedRequest) (*ResetShortlistedResponse, error)
}

// RegisterJobBoardServer registers srv on s.
func RegisterJobBoardServer(s grpc.ServiceRegistrar, srv JobBoardServer) {
	s.RegisterService(&JobBoard_ServiceDesc, srv)
}

// JobBoard_ServiceDesc describes the JobBoard service for grpc.Server.
var JobBoard_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*JobBoardServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", JobBoardServer.Register),
		unary("Login", JobBoardServer.Login),
		unary("GetProfile", JobBoardServer.GetProfile),
		unary("UpdateProfile", JobBoardServer.UpdateProfile),
		unary("SearchProfiles", JobBoardServer.SearchProfiles),
		unary("StartChat", JobBoardServer.StartChat),
		unary("SendMessage", JobBoardServer.SendMessage),
		unary("MarkChatRead", JobBoardServer.MarkChatRead),
		unary("PostJob", JobBoardServer.PostJob),
		unary("ListJobs", JobBoardServer.ListJobs),
		unary("Apply", JobBoardServer.Apply),
		unary("ListApplications", JobBoardServer.ListApplications),
		unary("UpdateApplicationStatus", JobBoardServer.UpdateApplicationStatus),
		unary("ScoreApplication", JobBoardServer.ScoreApplication),
		unary("ScoreAllApplications", JobBoardServer.ScoreAllApplications),
		unary("CompareResumes", JobBoardServer.CompareResumes),
		unary("GetSettings", JobBoardServer.GetSettings),
		unary("UpdateSettings", JobBoardServer.UpdateSettings),
		unary("GetDashboard", JobBoardServer.GetDashboard),
		unary("ResetShortlisted", JobBoardServer.ResetShortlisted),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchChats",
			Handler:       watchChatsHandler,
			ServerStreams: true,
		},
		{
			StreamName:    "GetHistory",
			Handler:       getHistoryHandler,
			ServerStreams: true,
		},
		{
			StreamName:    "SearchUsers",
			Handler:       searchUsersHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "jobboard/v1/jobboard.json",
}

// unary builds the method descriptor for a request/response RPC.
func unary[Req, Res any](name string, call func(JobBoardServer, context.Context, *Req) (*Res, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(JobBoardServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func watchChatsHandler(srv any, stream grpc.ServerStream) error {
	m := new(WatchChatsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(JobBoardServer).WatchChats(m, &grpc.GenericServerStream[WatchChatsRequest, ChatListUpdate]{ServerStream: stream})
}

func getHistoryHandler(srv any, stream grpc.ServerStream) error {
	m := new(GetHistoryRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(JobBoardServer).GetHistory(m, &grpc.GenericServerStream[GetHistoryRequest, Message]{ServerStream: stream})
}

func searchUsersHandler(srv any, stream grpc.ServerStream) error {
	return srv.(JobBoardServer).SearchUsers(&grpc.GenericServerStream[SearchUsersRequest, SearchUsersResponse]{ServerStream: stream})
}

// UnimplementedJobBoardServer answers every RPC with codes.Unimplemented.
// Embed it so servers keep compiling when methods are added.
type UnimplementedJobBoardServer struct{}

func (UnimplementedJobBoardServer) Register(context.Context, *RegisterRequest) (*AuthResponse, error) {
	return nil, unimplemented("Register")
}
func (UnimplementedJobBoardServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedJobBoardServer) GetProfile(context.Context, *GetProfileRequest) (*Profile, error) {
	return nil, unimplemented("GetProfile")
}
func (UnimplementedJobBoardServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*Profile, error) {
	return nil, unimplemented("UpdateProfile")
}
func (UnimplementedJobBoardServer) SearchProfiles(context.Context, *SearchProfilesRequest) (*SearchProfilesResponse, error) {
	return nil, unimplemented("SearchProfiles")
}
func (UnimplementedJobBoardServer) StartChat(context.Context, *StartChatRequest) (*StartChatResponse, error) {
	return nil, unimplemented("StartChat")
}
func (UnimplementedJobBoardServer) SendMessage(context.Context, *SendMessageRequest) (*Message, error) {
	return nil, unimplemented("SendMessage")
}
func (UnimplementedJobBoardServer) MarkChatRead(context.Context, *MarkChatReadRequest) (*Empty, error) {
	return nil, unimplemented("MarkChatRead")
}
func (UnimplementedJobBoardServer) WatchChats(*WatchChatsRequest, grpc.ServerStreamingServer[ChatListUpdate]) error {
	return unimplemented("WatchChats")
}
func (UnimplementedJobBoardServer) GetHistory(*GetHistoryRequest, grpc.ServerStreamingServer[Message]) error {
	return unimplemented("GetHistory")
}
func (UnimplementedJobBoardServer) SearchUsers(grpc.BidiStreamingServer[SearchUsersRequest, SearchUsersResponse]) error {
	return unimplemented("SearchUsers")
}
func (UnimplementedJobBoardServer) PostJob(context.Context, *PostJobRequest) (*Job, error) {
	return nil, unimplemented("PostJob")
}
func (UnimplementedJobBoardServer) ListJobs(context.Context, *ListJobsRequest) (*ListJobsResponse, error) {
	return nil, unimplemented("ListJobs")
}
func (UnimplementedJobBoardServer) Apply(context.Context, *ApplyRequest) (*Application, error) {
	return nil, unimplemented("Apply")
}
func (UnimplementedJobBoardServer) ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	return nil, unimplemented("ListApplications")
}
func (UnimplementedJobBoardServer) UpdateApplicationStatus(context.Context, *UpdateApplicationStatusRequest) (*Application, error) {
	return nil, unimplemented("UpdateApplicationStatus")
}
func (UnimplementedJobBoardServer) ScoreApplication(context.Context, *ScoreApplicationRequest) (*Application, error) {
	return nil, unimplemented("ScoreApplication")
}
func (UnimplementedJobBoardServer) ScoreAllApplications(context.Context, *ScoreAllApplicationsRequest) (*ScoreAllApplicationsResponse, error) {
	return nil, unimplemented("ScoreAllApplications")
}
func (UnimplementedJobBoardServer) CompareResumes(context.Context, *CompareResumesRequest) (*CompareResumesResponse, error) {
	return nil, unimplemented("CompareResumes")
}
func (UnimplementedJobBoardServer) GetSettings(context.Context, *GetSettingsRequest) (*Settings, error) {
	return nil, unimplemented("GetSettings")
}
func (UnimplementedJobBoardServer) UpdateSettings(context.Context, *UpdateSettingsRequest) (*Settings, error) {
	return nil, unimplemented("UpdateSettings")
}
func (UnimplementedJobBoardServer) GetDashboard(context.Context, *GetDashboardRequest) (*Dashboard, error) {
	return nil, unimplemented("GetDashboard")
}
func (UnimplementedJobBoardServer) ResetShortlisted(context.Context, *ResetShortlistedRequest) (*ResetShortlistedResponse, error) {
	return nil, unimplemented("ResetShortlisted")
}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}
