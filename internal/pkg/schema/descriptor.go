package schema

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	_ "google.golang.org/protobuf/types/known/timestamppb" // registers google/protobuf/timestamp.proto
)

const timestampProto = "google/protobuf/timestamp.proto"

// Descriptor renders the schema as a proto3 message descriptor.
//
// Field numbers are the 1-based declaration positions in the entity, so every
// variant of an entity agrees on the number of a shared field. Decimals and
// dates travel as strings, timestamps as google.protobuf.Timestamp.
func (s *Schema) Descriptor() *descriptorpb.DescriptorProto {
	msg := &descriptorpb.DescriptorProto{
		Name: proto.String(s.name),
	}

	for _, f := range s.fields {
		fd := &descriptorpb.FieldDescriptorProto{
			Name:     proto.String(f.Name),
			JsonName: proto.String(f.Name),
			Number:   proto.Int32(int32(s.entity.position(f.Name))),
			Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		}

		switch f.Kind {
		case KindInt, KindReference:
			fd.Type = descriptorpb.FieldDescriptorProto_TYPE_INT64.Enum()
		case KindBool:
			fd.Type = descriptorpb.FieldDescriptorProto_TYPE_BOOL.Enum()
		case KindTimestamp:
			fd.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
			fd.TypeName = proto.String(".google.protobuf.Timestamp")
		default:
			fd.Type = descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()
		}

		msg.Field = append(msg.Field, fd)
	}

	return msg
}

// FileDescriptor bundles schemas into one proto3 file under the given package.
// The result resolves against protoregistry.GlobalFiles with protodesc.NewFile.
func FileDescriptor(path, pkg string, schemas ...*Schema) *descriptorpb.FileDescriptorProto {
	file := &descriptorpb.FileDescriptorProto{
		Name:    proto.String(path),
		Package: proto.String(pkg),
		Syntax:  proto.String("proto3"),
	}

	needsTimestamp := false
	for _, s := range schemas {
		for _, f := range s.fields {
			if f.Kind == KindTimestamp {
				needsTimestamp = true
			}
		}
		file.MessageType = append(file.MessageType, s.Descriptor())
	}

	if needsTimestamp {
		file.Dependency = []string{timestampProto}
	}

	return file
}
